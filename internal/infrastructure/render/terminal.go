package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

// Styles
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var sectionStyle = lipgloss.NewStyle().Bold(true)

var scoreHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var scoreMid = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var scoreLow = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// Terminal renders a report as styled terminal text.
func Terminal(source string, report *scoring.Report) string {
	var b strings.Builder

	overall := report.OverallReadinessScore
	b.WriteString(headerStyle.Render(fmt.Sprintf("Story Analysis: %s", source)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  %s\n", overall.ReadinessCategory, ratingStyle(overall.ReadinessRating).Render(fmt.Sprintf("%d/100", overall.ReadinessRating)))
	fmt.Fprintf(&b, "%s\n\n", overall.Summary)

	clarity := report.ClarityAndRequirementAnalysis
	fmt.Fprintf(&b, "%s\n", sectionStyle.Render(fmt.Sprintf("Clarity and Requirements (%d/40)", clarity.TotalScore)))
	writeLine(&b, "Format", clarity.FormatCheck.Score, 10, clarity.FormatCheck.Feedback)
	writeLine(&b, "Clarity", clarity.ClarityAmbiguity.Score, 15, clarity.ClarityAmbiguity.Feedback)
	writeLine(&b, "Acceptance Criteria", clarity.AcceptanceCriteria.Score, 15, clarity.AcceptanceCriteria.Feedback)
	b.WriteString("\n")

	invest := report.InvestCriteriaAssessment
	fmt.Fprintf(&b, "%s\n", sectionStyle.Render(fmt.Sprintf("INVEST Assessment (%d/60)", invest.TotalScore)))
	writeLine(&b, "Independent", invest.Independent.Score, 10, invest.Independent.Justification)
	writeLine(&b, "Negotiable", invest.Negotiable.Score, 10, invest.Negotiable.Justification)
	writeLine(&b, "Valuable", invest.Valuable.Score, 10, invest.Valuable.Justification)
	writeLine(&b, "Estimable", invest.Estimable.Score, 10, invest.Estimable.Justification)
	writeLine(&b, "Small", invest.Small.Score, 10, invest.Small.Justification)
	writeLine(&b, "Testable", invest.Testable.Score, 10, invest.Testable.Justification)
	b.WriteString("\n")

	if len(report.OutstandingQueriesAndConflicts) > 0 {
		fmt.Fprintf(&b, "%s\n", sectionStyle.Render("Outstanding Queries"))
		for _, q := range report.OutstandingQueriesAndConflicts {
			fmt.Fprintf(&b, "  ? %s\n", q)
		}
		b.WriteString("\n")
	}

	rec := report.ActionableRecommendations
	if len(rec.SuggestedImprovements) > 0 {
		fmt.Fprintf(&b, "%s\n", sectionStyle.Render("Suggested Improvements"))
		for _, s := range rec.SuggestedImprovements {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(rec.StoryDecomposition) > 0 {
		fmt.Fprintf(&b, "%s\n", sectionStyle.Render("Story Decomposition"))
		for _, s := range rec.StoryDecomposition {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeLine(b *strings.Builder, name string, score, max int, detail string) {
	style := scoreLow
	switch {
	case score*3 >= max*2:
		style = scoreHigh
	case score*3 >= max:
		style = scoreMid
	}
	fmt.Fprintf(b, "  %-20s %s  %s\n", name, style.Render(fmt.Sprintf("%2d/%d", score, max)), detail)
}

func ratingStyle(rating int) lipgloss.Style {
	switch {
	case rating >= 71:
		return scoreHigh
	case rating >= 50:
		return scoreMid
	default:
		return scoreLow
	}
}
