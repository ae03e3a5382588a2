// Package planner turns a technology, a duration and a level into a day by day study plan.
package planner

import (
	"fmt"
	"math"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/content"
	"github.com/julianstephens/quickhire/internal/models"
)

// Generator builds plans from an injected catalog. It holds no mutable state
// and is safe for concurrent use.
type Generator struct {
	catalog *content.Catalog
}

func New(catalog *content.Catalog) *Generator {
	return &Generator{catalog: catalog}
}

// Catalog returns the content the generator draws from.
func (g *Generator) Catalog() *content.Catalog {
	return g.catalog
}

// Resolve returns the content set for technology. ok is false when the name
// was unknown and the catalog default was substituted.
func (g *Generator) Resolve(technology string) (models.TechnologyContentSet, bool) {
	if set, ok := g.catalog.Lookup(technology); ok {
		return set, true
	}
	return g.catalog.Default(), false
}

// Generate builds a plan. It never fails: unknown technologies use the default
// track, unknown levels use beginner, days past the authored range repeat the
// last authored day, and out of range sizes are clamped.
func (g *Generator) Generate(cfg models.PlanConfig) models.GeneratedPlan {
	set, _ := g.Resolve(cfg.Technology)
	level, _ := models.ParseLevel(string(cfg.ExplanationLevel))
	totalDays := clampDays(cfg.TotalDays)
	hours := cfg.DailyHours
	if !usableHours(hours) {
		hours = constants.FallbackDailyHours
	}

	plan := models.GeneratedPlan{
		Technology:       set.Name,
		Title:            Title(set.Name, totalDays),
		TotalDays:        totalDays,
		DailyHours:       hours,
		ExplanationLevel: level,
		Extended:         cfg.Extended,
		Days:             make([]models.PlanDay, 0, totalDays),
	}

	authored := set.AuthoredDays()
	for i := 1; i <= totalDays; i++ {
		src := set.Days[min(i, authored)-1]
		day := models.PlanDay{
			DayNumber:         i,
			Title:             src.Title,
			Concepts:          cloneStrings(src.Concepts),
			Resources:         append([]models.Resource{}, src.Resources...),
			PracticeQuestions: cloneStrings(src.PracticeProblems),
			EstimatedHours:    hours,
			IsCompleted:       false,
		}
		if cfg.Extended {
			day.Explanation = explanationFor(src, level)
			day.InterviewQuestions = questionsFor(src, level)
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

// Notices describes each fallback Generate would apply to cfg, so callers
// can tell the user what was substituted. It is empty when cfg is used as given.
func (g *Generator) Notices(cfg models.PlanConfig) []string {
	var notes []string
	set, known := g.Resolve(cfg.Technology)
	if !known {
		notes = append(notes, fmt.Sprintf("no content for %q, using %s", cfg.Technology, set.Name))
	}
	if _, ok := models.ParseLevel(string(cfg.ExplanationLevel)); !ok {
		notes = append(notes, fmt.Sprintf("unknown level %q, using %s", cfg.ExplanationLevel, models.LevelBeginner))
	}
	if days := clampDays(cfg.TotalDays); days != cfg.TotalDays {
		notes = append(notes, fmt.Sprintf("%d days is out of range, using %d", cfg.TotalDays, days))
	}
	if !usableHours(cfg.DailyHours) {
		notes = append(notes, fmt.Sprintf("daily hours must be positive, using %g", constants.FallbackDailyHours))
	}
	if authored := set.AuthoredDays(); clampDays(cfg.TotalDays) > authored {
		notes = append(notes, fmt.Sprintf("%s has %d authored days, later days repeat day %d", set.Name, authored, authored))
	}
	return notes
}

// WithDefaults fills the zero-valued fields of cfg with the defaults used
// when a caller omits them. Explicit values, valid or not, are kept.
func WithDefaults(cfg models.PlanConfig) models.PlanConfig {
	if cfg.TotalDays == 0 {
		cfg.TotalDays = constants.DefaultPlanDays
	}
	if cfg.DailyHours == 0 {
		cfg.DailyHours = constants.DefaultDailyHours
	}
	if cfg.ExplanationLevel == "" {
		cfg.ExplanationLevel = models.LevelBeginner
	}
	return cfg
}

// Title renders the display title of a plan.
func Title(technology string, days int) string {
	return fmt.Sprintf("%s %d-Day Study Plan", technology, days)
}

// usableHours rejects zero, negative and non-finite hour counts.
func usableHours(h float64) bool {
	return h > 0 && !math.IsInf(h, 1)
}

func clampDays(n int) int {
	return max(constants.MinPlanDays, min(n, constants.MaxPlanDays))
}

func explanationFor(day models.DayContent, level models.ExplanationLevel) string {
	if text := day.ExplanationsByLevel[level]; text != "" {
		return text
	}
	return day.ExplanationsByLevel[models.LevelBeginner]
}

func questionsFor(day models.DayContent, level models.ExplanationLevel) []models.InterviewQA {
	qs := day.QuestionsByLevel[level]
	if len(qs) == 0 {
		qs = day.QuestionsByLevel[models.LevelBeginner]
	}
	return append([]models.InterviewQA{}, qs...)
}

// cloneStrings copies s so plans never alias catalog memory. nil becomes empty.
func cloneStrings(s []string) []string {
	return append([]string{}, s...)
}
