package scoring

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/storylint/pkg/domain/story"
)

// generateRecommendations evaluates the fixed rule list against the
// sub-scores. Rule order is fixed and determines output order; there is no
// deduplication beyond the natural exclusivity of the rules.
func generateRecommendations(cfg Config, clarity ClarityAnalysis, invest InvestAssessment, match *story.FormatMatch) ([]string, Recommendations) {
	queries := []string{}
	improvements := []string{}
	decomposition := []string{}

	if clarity.FormatCheck.Score < cfg.FormatMatchScore {
		improvements = append(improvements, "Rephrase the story using the template: 'As a <persona>, I want <goal>, so that <value>'.")
	}

	if clarity.AcceptanceCriteria.Score < cfg.CriteriaProvidedScore {
		queries = append(queries, "What are the measurable acceptance criteria for this story?")
		improvements = append(improvements, "Acceptance criteria need attention: "+clarity.AcceptanceCriteria.Feedback)
	}

	if invest.Valuable.Score < cfg.ValuableMaxScore {
		queries = append(queries, "What value does the user gain once this story is delivered?")
		improvements = append(improvements, "State the benefit explicitly in a 'so that' clause.")
	}

	if invest.Small.Score < cfg.HighScore {
		queries = append(queries, "Is this story small enough to complete within a single sprint?")
		improvements = append(improvements, "Split the story into smaller, independently deliverable slices.")
		decomposition = append(decomposition, decompose(match)...)
	}

	if invest.Testable.Score < cfg.HighScore {
		queries = append(queries, "Are the success conditions observable and testable?")
		improvements = append(improvements, "Phrase acceptance criteria as Given/When/Then or 'verify that' statements.")
	}

	if invest.Independent.Score < cfg.MediumScore {
		queries = append(queries, "Does this story hide a dependency on other work?")
		improvements = append(improvements, "Remove or isolate the sequencing constraint so the story can be delivered on its own.")
	}

	return queries, Recommendations{
		SuggestedImprovements: improvements,
		StoryDecomposition:    decomposition,
	}
}

// decompose suggests sub-stories for an oversized story. When the goal
// clause contains "manage", the CRUD heuristic proposes create/edit/delete
// sub-stories reusing the same persona and value.
func decompose(match *story.FormatMatch) []string {
	suggestions := []string{"Break the story into one story per workflow step, business rule, or user type."}

	if match == nil || !strings.Contains(strings.ToLower(match.Goal), "manage") {
		return suggestions
	}

	lowerGoal := strings.ToLower(match.Goal)
	for _, verb := range []string{"create", "edit", "delete"} {
		goal := strings.ReplaceAll(lowerGoal, "manage", verb)
		suggestions = append(suggestions, fmt.Sprintf("As a %s, I want %s, so that %s.", match.Persona, goal, match.Value))
	}
	return suggestions
}
