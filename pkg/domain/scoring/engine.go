package scoring

import (
	"strings"

	"github.com/felixgeelhaar/storylint/pkg/domain/story"
)

// Analyze scores a user story and its optional acceptance-criteria text
// against the clarity and INVEST heuristics in cfg. It is a pure function:
// identical inputs produce identical Reports, and no text input causes an
// error. A blank or whitespace-only story short-circuits to the fixed empty
// report without running the scorers.
func Analyze(cfg Config, storyText, acceptanceCriteria string) *Report {
	if strings.TrimSpace(storyText) == "" {
		return emptyReport(cfg)
	}

	match := cfg.Matcher.Match(storyText)
	provided := acceptanceCriteria != ""
	criteria := story.SplitCriteria(acceptanceCriteria, cfg.TestableKeywords)

	clarity := analyzeClarity(cfg, storyText, match, provided, criteria)
	invest := analyzeInvest(cfg, storyText, match, criteria)

	overall := rating(clarity.TotalScore, invest.TotalScore)
	band := classify(cfg, overall)
	queries, recommendations := generateRecommendations(cfg, clarity, invest, match)

	return &Report{
		OverallReadinessScore: OverallReadiness{
			ReadinessRating:   overall,
			ReadinessCategory: band.Label,
			Summary:           band.Summary,
			ScoreBreakdown: ScoreBreakdown{
				ClarityRequirementAnalysis: clarity.TotalScore,
				InvestCriteriaAssessment:   invest.TotalScore,
			},
		},
		ClarityAndRequirementAnalysis:  clarity,
		InvestCriteriaAssessment:       invest,
		OutstandingQueriesAndConflicts: queries,
		ActionableRecommendations:      recommendations,
	}
}

// emptyReport is the fixed terminal result for a missing story. Every
// sub-score is zero with a uniform justification; the caller is asked for
// input via a single query. This avoids pushing empty text through the
// scorers.
func emptyReport(cfg Config) *Report {
	const noStory = "No story provided."

	check := CheckResult{Score: 0, Feedback: noStory}
	assessment := Assessment{Score: 0, Justification: noStory}
	band := classify(cfg, 0)

	return &Report{
		OverallReadinessScore: OverallReadiness{
			ReadinessRating:   0,
			ReadinessCategory: band.Label,
			Summary:           band.Summary,
			ScoreBreakdown:    ScoreBreakdown{},
		},
		ClarityAndRequirementAnalysis: ClarityAnalysis{
			FormatCheck:        check,
			ClarityAmbiguity:   check,
			AcceptanceCriteria: check,
		},
		InvestCriteriaAssessment: InvestAssessment{
			Independent: assessment,
			Negotiable:  assessment,
			Valuable:    assessment,
			Estimable:   assessment,
			Small:       assessment,
			Testable:    assessment,
		},
		OutstandingQueriesAndConflicts: []string{"Please provide the user story text to analyze."},
		ActionableRecommendations: Recommendations{
			SuggestedImprovements: []string{"Submit a user story so it can be assessed."},
			StoryDecomposition:    []string{},
		},
	}
}
