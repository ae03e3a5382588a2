package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/utils"
)

func (m Model) View() string {
	if len(m.plan.Days) == 0 {
		return docStyle.Render("This plan has no days.\n\n" + m.help.View(m.keys))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.plan.Title))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s · %s/day · %s", m.plan.ExplanationLevel, utils.FormatHours(m.plan.DailyHours), m.saveState())))
	b.WriteString("\n")
	b.WriteString(m.dots())
	b.WriteString("\n")
	for _, n := range m.notices {
		b.WriteString(noticeStyle.Render("! " + n))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(cardStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(mutedStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) saveState() string {
	if m.planID == "" {
		return "unsaved"
	}
	return "saved"
}

// dots renders one marker per day, highlighting the current one.
func (m Model) dots() string {
	parts := make([]string, len(m.plan.Days))
	for i, d := range m.plan.Days {
		mark := "○"
		if d.IsCompleted {
			mark = "●"
		}
		if i == m.index {
			parts[i] = activeDotStyle.Render(mark)
		} else {
			parts[i] = inactiveDotStyle.Render(mark)
		}
	}
	return fmt.Sprintf("Day %d of %d  %s", m.index+1, len(m.plan.Days), strings.Join(parts, " "))
}

func renderCard(d models.PlanDay, width int) string {
	if d.DayNumber == 0 {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(max(10, width))
	indent := lipgloss.NewStyle().Width(max(10, width-4)).PaddingLeft(2)

	var b strings.Builder
	status := "[ ]"
	if d.IsCompleted {
		status = doneStyle.Render("[x]")
	}
	fmt.Fprintf(&b, "%s %s\n", status, titleStyle.Render(fmt.Sprintf("Day %d: %s", d.DayNumber, d.Title)))
	b.WriteString(mutedStyle.Render("Estimated " + utils.FormatHours(d.EstimatedHours)))
	b.WriteString("\n")

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n" + sectionStyle.Render(title) + "\n")
		for _, item := range items {
			b.WriteString(indent.Render("• "+item) + "\n")
		}
	}
	list("Concepts", d.Concepts)

	resources := make([]string, len(d.Resources))
	for i, r := range d.Resources {
		resources[i] = fmt.Sprintf("%s (%s) %s", r.Title, r.Kind, mutedStyle.Render(r.URL))
	}
	list("Resources", resources)
	list("Practice", d.PracticeQuestions)

	if d.Explanation != "" {
		b.WriteString("\n" + sectionStyle.Render("Explanation") + "\n")
		b.WriteString(wrap.Render(d.Explanation) + "\n")
	}
	if len(d.InterviewQuestions) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Interview questions") + "\n")
		for i, q := range d.InterviewQuestions {
			b.WriteString(wrap.Render(fmt.Sprintf("%d. %s", i+1, q.Question)) + "\n")
			if q.ModelAnswer != "" {
				b.WriteString(indent.Render("Answer: "+q.ModelAnswer) + "\n")
			}
			if q.AnswerStyleNote != "" {
				b.WriteString(indent.Render(mutedStyle.Render("Style: "+q.AnswerStyleNote)) + "\n")
			}
			if q.ImpressTip != "" {
				b.WriteString(indent.Render(mutedStyle.Render("Tip: "+q.ImpressTip)) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
