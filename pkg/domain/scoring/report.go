package scoring

// CheckResult is a clarity sub-score with its feedback string.
type CheckResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Assessment is an INVEST sub-score with its justification string.
type Assessment struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

// ScoreBreakdown splits the overall rating into its two halves.
type ScoreBreakdown struct {
	ClarityRequirementAnalysis int `json:"clarityRequirementAnalysis"`
	InvestCriteriaAssessment   int `json:"investCriteriaAssessment"`
}

// OverallReadiness is the headline result: the 0-100 rating, the readiness
// band it falls into, and the score breakdown.
type OverallReadiness struct {
	ReadinessRating   int            `json:"readinessRating"`
	ReadinessCategory string         `json:"readinessCategory"`
	Summary           string         `json:"summary"`
	ScoreBreakdown    ScoreBreakdown `json:"scoreBreakdown"`
}

// ClarityAnalysis groups the three clarity sub-scores. TotalScore is their
// sum, at most 40.
type ClarityAnalysis struct {
	FormatCheck        CheckResult `json:"formatCheck"`
	ClarityAmbiguity   CheckResult `json:"clarityAmbiguity"`
	AcceptanceCriteria CheckResult `json:"acceptanceCriteria"`
	TotalScore         int         `json:"totalScore"`
}

// InvestAssessment groups the six INVEST sub-scores. TotalScore is their
// sum, at most 60.
type InvestAssessment struct {
	Independent Assessment `json:"independent"`
	Negotiable  Assessment `json:"negotiable"`
	Valuable    Assessment `json:"valuable"`
	Estimable   Assessment `json:"estimable"`
	Small       Assessment `json:"small"`
	Testable    Assessment `json:"testable"`
	TotalScore  int         `json:"totalScore"`
}

// Recommendations holds the actionable output. Both fields are always
// non-nil slices so the JSON contract is stable: suggestedImprovements is
// always an array of strings and storyDecomposition is present even when
// empty.
type Recommendations struct {
	SuggestedImprovements []string `json:"suggestedImprovements"`
	StoryDecomposition    []string `json:"storyDecomposition"`
}

// Report is the full analysis result for one story. It is created fresh per
// Analyze call and never mutated afterwards.
type Report struct {
	OverallReadinessScore          OverallReadiness `json:"overallReadinessScore"`
	ClarityAndRequirementAnalysis  ClarityAnalysis  `json:"clarityAndRequirementAnalysis"`
	InvestCriteriaAssessment       InvestAssessment `json:"investCriteriaAssessment"`
	OutstandingQueriesAndConflicts []string         `json:"outstandingQueriesAndConflicts"`
	ActionableRecommendations      Recommendations  `json:"actionableRecommendations"`
}
