package models

type ExperienceResult string

const (
	ResultSelected  ExperienceResult = "selected"
	ResultRejected  ExperienceResult = "rejected"
	ResultPending   ExperienceResult = "pending"
	ResultWithdrawn ExperienceResult = "withdrawn"
)

var ExperienceResults = []ExperienceResult{ResultSelected, ResultRejected, ResultPending, ResultWithdrawn}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

type InterviewRound struct {
	Name        string   `json:"name"`
	RoundType   string   `json:"round_type,omitempty"` // online-assessment, technical, hr, ...
	Description string   `json:"description,omitempty"`
	Questions   []string `json:"questions,omitempty"`
}

// Experience is a user-submitted account of an interview process.
type Experience struct {
	ID             string           `json:"id"`
	Company        string           `json:"company"`
	Role           string           `json:"role"`
	ExperienceDate string           `json:"experience_date,omitempty"` // YYYY-MM-DD format
	Result         ExperienceResult `json:"result"`
	Difficulty     Difficulty       `json:"difficulty"`
	Summary        string           `json:"summary,omitempty"`
	Author         string           `json:"author,omitempty"`
	Rounds         []InterviewRound `json:"rounds"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// ExperienceFilter narrows an experience query. Empty fields are ignored.
type ExperienceFilter struct {
	Company string
	Role    string
	Result  ExperienceResult
	Limit   int
}
