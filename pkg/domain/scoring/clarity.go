package scoring

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/storylint/pkg/domain/story"
)

// containsAny reports whether any keyword appears as a case-insensitive
// substring of text, returning the first keyword found.
func containsAny(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// scoreFormat awards full credit for a canonical-template match. A non-empty
// story always gets partial credit, never zero.
func scoreFormat(cfg Config, match *story.FormatMatch) CheckResult {
	if match != nil {
		return CheckResult{
			Score:    cfg.FormatMatchScore,
			Feedback: "Story follows the canonical 'As a..., I want..., so that...' template.",
		}
	}
	return CheckResult{
		Score:    cfg.FormatMissScore,
		Feedback: "Story does not follow the canonical template; persona, goal, or value could not be identified.",
	}
}

// scoreClarity combines the length heuristic and the ambiguous-keyword scan.
// The base score earns up to two bonuses; the result is clamped to
// ClarityMaxScore as a safety invariant.
func scoreClarity(cfg Config, text string) CheckResult {
	score := cfg.ClarityBaseScore
	var notes []string

	if len(text) >= cfg.ShortStoryLength {
		score += cfg.ClarityBonus
	} else {
		notes = append(notes, "the story is very short; add enough context to act on it")
	}

	if kw, found := containsAny(text, cfg.AmbiguousKeywords); found {
		notes = append(notes, fmt.Sprintf("avoid ambiguous wording such as %q; state what the system does, not what it should or could do", kw))
	} else {
		score += cfg.ClarityBonus
	}

	if score > cfg.ClarityMaxScore {
		score = cfg.ClarityMaxScore
	}

	feedback := "Story is concise and free of ambiguous wording."
	if len(notes) > 0 {
		feedback = "Clarity issues: " + strings.Join(notes, "; ") + "."
	}
	return CheckResult{Score: score, Feedback: feedback}
}

// scoreCriteria scores the acceptance-criteria text. Absent text scores
// CriteriaMissingScore, present-but-blank text scores CriteriaEmptyScore, and
// provided criteria score CriteriaProvidedScore minus a deduction when more
// than half the lines lack a testable keyword. The deduction never drives the
// score below zero.
func scoreCriteria(cfg Config, provided bool, criteria story.CriteriaList) CheckResult {
	if !provided {
		return CheckResult{
			Score:    cfg.CriteriaMissingScore,
			Feedback: "No acceptance criteria provided; consider Given/When/Then scenarios.",
		}
	}
	if criteria.IsEmpty() {
		return CheckResult{
			Score:    cfg.CriteriaEmptyScore,
			Feedback: "Acceptance criteria section is present but contains no criteria.",
		}
	}

	score := cfg.CriteriaProvidedScore
	feedback := fmt.Sprintf("%d acceptance criteria provided.", criteria.Count())

	if criteria.NonTestableCount*2 > criteria.Count() {
		score -= cfg.NonTestableDeduction
		if score < 0 {
			score = 0
		}
		feedback = fmt.Sprintf("%d acceptance criteria provided, but most lack testable phrasing; rewrite them as Given/When/Then or 'verify that' statements.", criteria.Count())
	}
	return CheckResult{Score: score, Feedback: feedback}
}

// analyzeClarity produces the full clarity section of the report.
func analyzeClarity(cfg Config, text string, match *story.FormatMatch, provided bool, criteria story.CriteriaList) ClarityAnalysis {
	analysis := ClarityAnalysis{
		FormatCheck:        scoreFormat(cfg, match),
		ClarityAmbiguity:   scoreClarity(cfg, text),
		AcceptanceCriteria: scoreCriteria(cfg, provided, criteria),
	}
	analysis.TotalScore = analysis.FormatCheck.Score + analysis.ClarityAmbiguity.Score + analysis.AcceptanceCriteria.Score
	return analysis
}
