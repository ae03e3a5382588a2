package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/content"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/validation"
)

// PlanFormModel holds the raw values edited by the plan configuration form.
type PlanFormModel struct {
	Technology string
	Days       string
	Hours      string
	Level      models.ExplanationLevel
	Extended   bool
}

func NewPlanFormModel(cfg models.PlanConfig) *PlanFormModel {
	return &PlanFormModel{
		Technology: cfg.Technology,
		Days:       strconv.Itoa(cfg.TotalDays),
		Hours:      strconv.FormatFloat(cfg.DailyHours, 'f', -1, 64),
		Level:      cfg.ExplanationLevel,
		Extended:   cfg.Extended,
	}
}

// Config parses the form values into a validated plan configuration.
func (fm *PlanFormModel) Config() (models.PlanConfig, error) {
	days, err := parseDays(fm.Days)
	if err != nil {
		return models.PlanConfig{}, err
	}
	hours, err := parseHours(fm.Hours)
	if err != nil {
		return models.PlanConfig{}, err
	}
	cfg := models.PlanConfig{
		Technology:       fm.Technology,
		TotalDays:        days,
		DailyHours:       hours,
		ExplanationLevel: fm.Level,
		Extended:         fm.Extended,
	}
	return cfg, validation.ValidatePlanConfig(cfg)
}

func parseDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("days must be a whole number")
	}
	if n < constants.MinPlanDays || n > constants.MaxPlanDays {
		return 0, fmt.Errorf("days must be between %d and %d", constants.MinPlanDays, constants.MaxPlanDays)
	}
	return n, nil
}

func parseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("hours must be a number")
	}
	if math.IsNaN(h) || h <= 0 || h > 24 {
		return 0, fmt.Errorf("hours must be greater than 0 and at most 24")
	}
	return h, nil
}

// NewPlanForm builds the configuration form over the catalog's technologies.
func NewPlanForm(catalog *content.Catalog, fm *PlanFormModel) *huh.Form {
	techOptions := make([]huh.Option[string], 0, catalog.Len())
	for _, set := range catalog.Sets() {
		techOptions = append(techOptions, huh.NewOption(fmt.Sprintf("%s (%d days)", set.Name, set.AuthoredDays()), set.Name))
	}
	if fm.Technology == "" {
		fm.Technology = catalog.Default().Name
	}

	levelOptions := make([]huh.Option[models.ExplanationLevel], len(models.Levels))
	for i, l := range models.Levels {
		levelOptions[i] = huh.NewOption(strings.ToUpper(string(l[:1]))+string(l[1:]), l)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Technology").
				Options(techOptions...).
				Value(&fm.Technology),
			huh.NewInput().
				Title(fmt.Sprintf("Days (%d-%d)", constants.MinPlanDays, constants.MaxPlanDays)).
				Value(&fm.Days).
				Validate(func(s string) error {
					_, err := parseDays(s)
					return err
				}),
			huh.NewInput().
				Title("Hours per day").
				Value(&fm.Hours).
				Validate(func(s string) error {
					_, err := parseHours(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[models.ExplanationLevel]().
				Title("Explanation level").
				Options(levelOptions...).
				Value(&fm.Level),
			huh.NewConfirm().
				Title("Include explanations and interview questions?").
				Value(&fm.Extended),
		),
	).WithTheme(huh.ThemeDracula())
}
