package scoring

import (
	"fmt"

	"github.com/felixgeelhaar/storylint/pkg/domain/story"
)

// The six INVEST assessments are independent: each consumes only the story
// text, the format match, and the criteria analysis, with no coupling between
// scorers.

func assessIndependent(cfg Config, text string) Assessment {
	if kw, found := containsAny(text, cfg.DependencyKeywords); found {
		return Assessment{
			Score:         cfg.LowScore,
			Justification: fmt.Sprintf("Story mentions %q, which suggests a sequencing dependency on other work.", kw),
		}
	}
	return Assessment{
		Score:         cfg.MediumScore,
		Justification: "No explicit dependency wording found; assumed independent, but review against the backlog.",
	}
}

func assessNegotiable(cfg Config, text string) Assessment {
	if kw, found := containsAny(text, cfg.TechnicalKeywords); found {
		return Assessment{
			Score:         cfg.LowScore,
			Justification: fmt.Sprintf("Story prescribes implementation detail (%q); it should describe the need, not the solution.", kw),
		}
	}
	return Assessment{
		Score:         cfg.HighScore,
		Justification: "Story describes what is needed rather than how to build it, leaving room for negotiation.",
	}
}

func assessValuable(cfg Config, match *story.FormatMatch) Assessment {
	if match != nil && len(match.Value) > cfg.MinValueLength {
		return Assessment{
			Score:         cfg.ValuableMaxScore,
			Justification: fmt.Sprintf("Clear value statement: %q.", match.Value),
		}
	}
	return Assessment{
		Score:         cfg.LowScore,
		Justification: "The value to the user is unclear; the story lacks a meaningful 'so that' clause.",
	}
}

func assessEstimable(cfg Config, text string, criteria story.CriteriaList) Assessment {
	if !criteria.IsEmpty() && len(text) > cfg.ShortStoryLength {
		return Assessment{
			Score:         cfg.HighScore,
			Justification: "Story has enough detail and acceptance criteria to be estimated.",
		}
	}
	return Assessment{
		Score:         cfg.MediumScore,
		Justification: "Story is too vague to estimate reliably; add detail or acceptance criteria.",
	}
}

func assessSmall(cfg Config, text string, criteria story.CriteriaList) Assessment {
	if len(text) > cfg.LongStoryLength || criteria.Count() > cfg.MaxCriteriaCount {
		return Assessment{
			Score:         cfg.LowScore,
			Justification: "Story is likely an epic: it is very long or carries too many acceptance criteria for a single sprint item.",
		}
	}
	return Assessment{
		Score:         cfg.HighScore,
		Justification: "Story appears appropriately sized for a single sprint.",
	}
}

func assessTestable(cfg Config, criteria story.CriteriaList) Assessment {
	if criteria.IsEmpty() {
		return Assessment{
			Score:         cfg.LowScore,
			Justification: "Cannot assess testability without acceptance criteria.",
		}
	}

	var result Assessment
	if criteria.TestableKeywordFound {
		result = Assessment{
			Score:         cfg.HighScore,
			Justification: "Acceptance criteria use testable phrasing.",
		}
	} else {
		result = Assessment{
			Score:         cfg.MediumScore,
			Justification: "Acceptance criteria exist but none use testable phrasing.",
		}
	}
	if criteria.NonTestableCount > 0 {
		result.Justification += fmt.Sprintf(" %d of %d criteria lack a testable keyword.", criteria.NonTestableCount, criteria.Count())
	}
	return result
}

// analyzeInvest produces the full INVEST section of the report.
func analyzeInvest(cfg Config, text string, match *story.FormatMatch, criteria story.CriteriaList) InvestAssessment {
	assessment := InvestAssessment{
		Independent: assessIndependent(cfg, text),
		Negotiable:  assessNegotiable(cfg, text),
		Valuable:    assessValuable(cfg, match),
		Estimable:   assessEstimable(cfg, text, criteria),
		Small:       assessSmall(cfg, text, criteria),
		Testable:    assessTestable(cfg, criteria),
	}
	assessment.TotalScore = assessment.Independent.Score +
		assessment.Negotiable.Score +
		assessment.Valuable.Score +
		assessment.Estimable.Score +
		assessment.Small.Score +
		assessment.Testable.Score
	return assessment
}
