package models

type EventType string

const (
	EventWorkshop   EventType = "workshop"
	EventHackathon  EventType = "hackathon"
	EventCareerFair EventType = "career-fair"
	EventWebinar    EventType = "webinar"
	EventDeadline   EventType = "deadline"
	EventMeetup     EventType = "meetup"
)

var EventTypes = []EventType{EventWorkshop, EventHackathon, EventCareerFair, EventWebinar, EventDeadline, EventMeetup}

// CareerEvent is an entry on the career events calendar.
type CareerEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventType   EventType `json:"event_type"`
	Location    string    `json:"location,omitempty"`
	StartsAt    string    `json:"starts_at"` // RFC3339 timestamp, UTC
	EndsAt      string    `json:"ends_at"`   // RFC3339 timestamp, UTC
	URL         string    `json:"url,omitempty"`
	CreatedAt   string    `json:"created_at"`
}
