package models

// PlanConfig is the user-supplied configuration for generating a study plan.
type PlanConfig struct {
	Technology       string           `json:"technology"`
	TotalDays        int              `json:"total_days"`
	DailyHours       float64          `json:"daily_hours"`
	ExplanationLevel ExplanationLevel `json:"explanation_level"`
	// Extended adds the level-specific explanation and interview Q&A to each day.
	Extended bool `json:"extended"`
}

type PlanDay struct {
	ID                 string        `json:"id,omitempty"`
	DayNumber          int           `json:"day_number"`
	Title              string        `json:"title"`
	Concepts           []string      `json:"concepts"`
	Resources          []Resource    `json:"resources"`
	PracticeQuestions  []string      `json:"practice_questions"`
	Explanation        string        `json:"explanation,omitempty"`
	InterviewQuestions []InterviewQA `json:"interview_questions,omitempty"`
	EstimatedHours     float64       `json:"estimated_hours"`
	IsCompleted        bool          `json:"is_completed"`
	CompletedAt        *string       `json:"completed_at,omitempty"` // RFC3339 timestamp
}

// GeneratedPlan is the transient output of the plan generator.
type GeneratedPlan struct {
	Technology       string           `json:"technology"`
	Title            string           `json:"title"`
	TotalDays        int              `json:"total_days"`
	DailyHours       float64          `json:"daily_hours"`
	ExplanationLevel ExplanationLevel `json:"explanation_level"`
	Extended         bool             `json:"extended"`
	Days             []PlanDay        `json:"days"`
}

// StudyPlan is a generated plan that has been saved to storage.
type StudyPlan struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Technology       string           `json:"technology"`
	TotalDays        int              `json:"total_days"`
	DailyHours       float64          `json:"daily_hours"`
	ExplanationLevel ExplanationLevel `json:"explanation_level"`
	CreatedAt        string           `json:"created_at"`           // RFC3339 timestamp
	DeletedAt        *string          `json:"deleted_at,omitempty"` // RFC3339 timestamp
	Days             []PlanDay        `json:"days,omitempty"`
}

type PlanProgress struct {
	PlanID         string  `json:"plan_id"`
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletedHours float64 `json:"completed_hours"`
	TotalHours     float64 `json:"total_hours"`
	Percent        float64 `json:"percent"`
	NextDay        int     `json:"next_day,omitempty"` // first incomplete day, 0 when finished
}
