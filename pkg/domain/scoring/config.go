// Package scoring implements the story readiness engine: deterministic text
// heuristics that map a user story and its acceptance criteria to clarity and
// INVEST sub-scores, an overall readiness percentage, and actionable
// recommendations. The engine is a pure function of its inputs and the
// Config value passed to it; there is no package-level mutable state.
package scoring

import "github.com/felixgeelhaar/storylint/pkg/domain/story"

// ReadinessBand is one fixed readiness category. Bands are ordered by
// descending Threshold; a rating belongs to the first band whose threshold it
// meets or exceeds.
type ReadinessBand struct {
	Threshold int    `json:"threshold" yaml:"threshold"`
	Label     string `json:"label" yaml:"label"`
	Summary   string `json:"summary" yaml:"summary"`
}

// Config holds every threshold, keyword set, weight, and band the engine
// uses. It is built once and treated as immutable; callers pass it explicitly
// into Analyze so tests can run with varied configurations in parallel.
type Config struct {
	// Matcher extracts persona/goal/value from the canonical template.
	Matcher story.Matcher `yaml:"-"`

	// Length thresholds, in characters and lines.
	ShortStoryLength int `yaml:"short_story_length"`
	LongStoryLength  int `yaml:"long_story_length"`
	MaxCriteriaCount int `yaml:"max_criteria_count"`

	// Keyword sets, matched as case-insensitive substrings.
	AmbiguousKeywords  []string `yaml:"ambiguous_keywords"`
	DependencyKeywords []string `yaml:"dependency_keywords"`
	TechnicalKeywords  []string `yaml:"technical_keywords"`
	TestableKeywords   []string `yaml:"testable_keywords"`

	// Clarity weights.
	FormatMatchScore      int `yaml:"format_match_score"`
	FormatMissScore       int `yaml:"format_miss_score"`
	ClarityBaseScore      int `yaml:"clarity_base_score"`
	ClarityBonus          int `yaml:"clarity_bonus"`
	ClarityMaxScore       int `yaml:"clarity_max_score"`
	CriteriaProvidedScore int `yaml:"criteria_provided_score"`
	CriteriaEmptyScore    int `yaml:"criteria_empty_score"`
	CriteriaMissingScore  int `yaml:"criteria_missing_score"`
	NonTestableDeduction  int `yaml:"non_testable_deduction"`

	// INVEST weights.
	HighScore        int `yaml:"high_score"`
	MediumScore      int `yaml:"medium_score"`
	LowScore         int `yaml:"low_score"`
	ValuableMaxScore int `yaml:"valuable_max_score"`
	MinValueLength   int `yaml:"min_value_length"`

	// Bands must be ordered by descending threshold and end with a
	// threshold of 0 so every rating classifies.
	Bands []ReadinessBand `yaml:"bands"`
}

// DefaultConfig returns the canonical scoring configuration.
func DefaultConfig() Config {
	return Config{
		Matcher: story.MustMatcher(story.DefaultPattern),

		ShortStoryLength: 25,
		LongStoryLength:  200,
		MaxCriteriaCount: 7,

		AmbiguousKeywords:  []string{"should", "could", "might", "etc.", "and/or"},
		DependencyKeywords: []string{"dependent on", "after", "following", "once"},
		TechnicalKeywords:  []string{"database", "api endpoint", "algorithm", "sql"},
		TestableKeywords:   []string{"verify that", "ensure that", "given", "when", "then", "confirm that"},

		FormatMatchScore:      10,
		FormatMissScore:       2,
		ClarityBaseScore:      10,
		ClarityBonus:          5,
		ClarityMaxScore:       15,
		CriteriaProvidedScore: 15,
		CriteriaEmptyScore:    5,
		CriteriaMissingScore:  0,
		NonTestableDeduction:  5,

		HighScore:        8,
		MediumScore:      6,
		LowScore:         3,
		ValuableMaxScore: 10,
		MinValueLength:   5,

		Bands: []ReadinessBand{
			{Threshold: 90, Label: "✅ Ready for Development", Summary: "The story is clear, valuable, testable, and appropriately sized for a sprint."},
			{Threshold: 71, Label: "🟡 Nearly Ready", Summary: "The story is close to ready; resolve the outstanding queries before sprint planning."},
			{Threshold: 50, Label: "⚠️ Requires Improvement", Summary: "The story needs rework before it can be committed to a sprint."},
			{Threshold: 0, Label: "❌ Not Ready", Summary: "The story is missing fundamental information and cannot be planned yet."},
		},
	}
}
