package models

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypeInternship JobType = "internship"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypeInternship, JobTypePartTime, JobTypeContract}

type JobListing struct {
	ID              string   `json:"id"`
	Company         string   `json:"company"`
	Title           string   `json:"title"`
	Location        string   `json:"location,omitempty"`
	JobType         JobType  `json:"job_type"`
	ExperienceLevel string   `json:"experience_level,omitempty"` // fresher, 0-2 years, ...
	Description     string   `json:"description,omitempty"`
	ApplyURL        string   `json:"apply_url,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	PostedAt        string   `json:"posted_at,omitempty"` // YYYY-MM-DD format
	CreatedAt       string   `json:"created_at"`
}

// JobFilter narrows a job listing query. Empty fields are ignored.
type JobFilter struct {
	Keyword         string
	Location        string
	JobType         JobType
	ExperienceLevel string
	Limit           int
}
