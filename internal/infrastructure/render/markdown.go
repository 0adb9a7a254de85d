// Package render turns analysis reports into human-readable output, as
// markdown for files and PR comments or as styled text for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

// Markdown renders a report as a markdown document.
func Markdown(source string, report *scoring.Report) string {
	var b strings.Builder

	overall := report.OverallReadinessScore
	fmt.Fprintf(&b, "# Story Analysis: %s\n\n", source)
	fmt.Fprintf(&b, "**%s** — %d/100\n\n", overall.ReadinessCategory, overall.ReadinessRating)
	fmt.Fprintf(&b, "%s\n\n", overall.Summary)

	clarity := report.ClarityAndRequirementAnalysis
	fmt.Fprintf(&b, "## Clarity and Requirements (%d/40)\n\n", clarity.TotalScore)
	writeCheck(&b, "Format", clarity.FormatCheck)
	writeCheck(&b, "Clarity", clarity.ClarityAmbiguity)
	writeCheck(&b, "Acceptance Criteria", clarity.AcceptanceCriteria)
	b.WriteString("\n")

	invest := report.InvestCriteriaAssessment
	fmt.Fprintf(&b, "## INVEST Assessment (%d/60)\n\n", invest.TotalScore)
	writeAssessment(&b, "Independent", invest.Independent)
	writeAssessment(&b, "Negotiable", invest.Negotiable)
	writeAssessment(&b, "Valuable", invest.Valuable)
	writeAssessment(&b, "Estimable", invest.Estimable)
	writeAssessment(&b, "Small", invest.Small)
	writeAssessment(&b, "Testable", invest.Testable)
	b.WriteString("\n")

	if len(report.OutstandingQueriesAndConflicts) > 0 {
		b.WriteString("## Outstanding Queries\n\n")
		for _, q := range report.OutstandingQueriesAndConflicts {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\n")
	}

	rec := report.ActionableRecommendations
	if len(rec.SuggestedImprovements) > 0 {
		b.WriteString("## Suggested Improvements\n\n")
		for _, s := range rec.SuggestedImprovements {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(rec.StoryDecomposition) > 0 {
		b.WriteString("## Story Decomposition\n\n")
		for _, s := range rec.StoryDecomposition {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeCheck(b *strings.Builder, name string, c scoring.CheckResult) {
	fmt.Fprintf(b, "- **%s** (%d): %s\n", name, c.Score, c.Feedback)
}

func writeAssessment(b *strings.Builder, name string, a scoring.Assessment) {
	fmt.Fprintf(b, "- **%s** (%d): %s\n", name, a.Score, a.Justification)
}
