package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/utils"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func Heading(s string) string { return headingStyle.Render(s) }

func Muted(s string) string { return mutedStyle.Render(s) }

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// Checkbox renders a completion marker.
func Checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}

// ShortID trims a UUID to its first block for compact listings.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// RenderDay formats one day of a plan. Extended content is included when present.
func RenderDay(d models.PlanDay) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Day %d: %s (%s)\n", Checkbox(d.IsCompleted), d.DayNumber, d.Title, utils.FormatHours(d.EstimatedHours))

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "  %s\n", Heading(title))
		for _, item := range items {
			fmt.Fprintf(&sb, "    - %s\n", item)
		}
	}
	section("Concepts", d.Concepts)

	resources := make([]string, len(d.Resources))
	for i, r := range d.Resources {
		resources[i] = fmt.Sprintf("[%s] %s %s", r.Kind, r.Title, Muted(r.URL))
	}
	section("Resources", resources)
	section("Practice", d.PracticeQuestions)

	if d.Explanation != "" {
		fmt.Fprintf(&sb, "  %s\n    %s\n", Heading("Explanation"), d.Explanation)
	}
	if len(d.InterviewQuestions) > 0 {
		fmt.Fprintf(&sb, "  %s\n", Heading("Interview questions"))
		for i, q := range d.InterviewQuestions {
			fmt.Fprintf(&sb, "    %d. %s\n", i+1, q.Question)
			if q.ModelAnswer != "" {
				fmt.Fprintf(&sb, "       Answer: %s\n", q.ModelAnswer)
			}
			if q.AnswerStyleNote != "" {
				fmt.Fprintf(&sb, "       Style: %s\n", q.AnswerStyleNote)
			}
			if q.ImpressTip != "" {
				fmt.Fprintf(&sb, "       Tip: %s\n", q.ImpressTip)
			}
		}
	}
	return sb.String()
}

// ProgressBar draws a fixed-width bar for percent in [0, 100].
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	return doneStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// DisplayTime shortens a stored RFC3339 stamp to local date and minute.
func DisplayTime(stamp string) string {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return t.Local().Format(constants.DateTimeFormat)
}
