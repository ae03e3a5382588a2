package models

import "strings"

type ExplanationLevel string

const (
	LevelBeginner     ExplanationLevel = "beginner"
	LevelIntermediate ExplanationLevel = "intermediate"
	LevelAdvanced     ExplanationLevel = "advanced"
)

// Levels lists the explanation levels in ascending order.
var Levels = []ExplanationLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel maps a user-supplied level to a known ExplanationLevel.
// The second return value is false when the input was not recognized and
// the beginner level was substituted.
func ParseLevel(s string) (ExplanationLevel, bool) {
	switch ExplanationLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	default:
		return LevelBeginner, false
	}
}

type Resource struct {
	Kind  string `json:"kind" yaml:"kind"` // docs, video, article, course
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// InterviewQA is a practice interview question with guidance on answering it.
type InterviewQA struct {
	Question        string `json:"question" yaml:"question"`
	ModelAnswer     string `json:"model_answer" yaml:"model_answer"`
	AnswerStyleNote string `json:"answer_style_note" yaml:"answer_style"`
	ImpressTip      string `json:"impress_tip" yaml:"impress_tip"`
}

// DayContent is the authored material for a single day of a technology track.
type DayContent struct {
	Day                 int                                `json:"day" yaml:"day"`
	Title               string                             `json:"title" yaml:"title"`
	Concepts            []string                           `json:"concepts" yaml:"concepts"`
	ExplanationsByLevel map[ExplanationLevel]string        `json:"explanations" yaml:"explanations"`
	QuestionsByLevel    map[ExplanationLevel][]InterviewQA `json:"questions" yaml:"questions"`
	PracticeProblems    []string                           `json:"practice" yaml:"practice"`
	Resources           []Resource                         `json:"resources" yaml:"resources"`
}

// TechnologyContentSet is the full authored track for one technology.
// Days are ordered and numbered from 1.
type TechnologyContentSet struct {
	Name    string       `json:"name" yaml:"name"`
	Aliases []string     `json:"aliases,omitempty" yaml:"aliases"`
	Summary string       `json:"summary,omitempty" yaml:"summary"`
	Days    []DayContent `json:"days" yaml:"days"`
}

// AuthoredDays returns the number of authored days in the set.
func (s TechnologyContentSet) AuthoredDays() int {
	return len(s.Days)
}
