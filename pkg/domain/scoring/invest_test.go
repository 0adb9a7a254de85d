package scoring

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/storylint/pkg/domain/story"
)

func criteria(cfg Config, text string) story.CriteriaList {
	return story.SplitCriteria(text, cfg.TestableKeywords)
}

func TestAssessIndependent(t *testing.T) {
	cfg := DefaultConfig()

	low := assessIndependent(cfg, "As a user, I want reports once the billing rework lands, so that totals are right")
	if low.Score != cfg.LowScore {
		t.Errorf("dependent story: got %d, want %d", low.Score, cfg.LowScore)
	}

	medium := assessIndependent(cfg, "As a user, I want to export reports, so that I can share them")
	if medium.Score != cfg.MediumScore {
		t.Errorf("independent story: got %d, want %d", medium.Score, cfg.MediumScore)
	}
}

func TestAssessNegotiable(t *testing.T) {
	cfg := DefaultConfig()

	low := assessNegotiable(cfg, "As a user, I want a new database table for exports, so that data is kept")
	if low.Score != cfg.LowScore {
		t.Errorf("prescriptive story: got %d, want %d", low.Score, cfg.LowScore)
	}
	if !strings.Contains(low.Justification, "database") {
		t.Errorf("justification should name the technical term, got %q", low.Justification)
	}

	high := assessNegotiable(cfg, "As a user, I want to export reports, so that I can share them")
	if high.Score != cfg.HighScore {
		t.Errorf("negotiable story: got %d, want %d", high.Score, cfg.HighScore)
	}
}

func TestAssessValuable(t *testing.T) {
	cfg := DefaultConfig()

	full := assessValuable(cfg, &story.FormatMatch{Persona: "user", Goal: "g", Value: "I can share reports"})
	if full.Score != cfg.ValuableMaxScore {
		t.Errorf("clear value: got %d, want %d", full.Score, cfg.ValuableMaxScore)
	}
	if !strings.Contains(full.Justification, "I can share reports") {
		t.Errorf("justification should quote the value clause, got %q", full.Justification)
	}

	tests := []struct {
		name  string
		match *story.FormatMatch
	}{
		{"no format match", nil},
		{"value too short", &story.FormatMatch{Persona: "user", Goal: "g", Value: "win"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assessValuable(cfg, tt.match)
			if got.Score != cfg.LowScore {
				t.Errorf("got %d, want %d", got.Score, cfg.LowScore)
			}
		})
	}
}

func TestAssessEstimable(t *testing.T) {
	cfg := DefaultConfig()

	high := assessEstimable(cfg, "As a user, I want to export reports, so that I can share them", criteria(cfg, "Given X\nThen Y"))
	if high.Score != cfg.HighScore {
		t.Errorf("estimable: got %d, want %d", high.Score, cfg.HighScore)
	}

	noCriteria := assessEstimable(cfg, "As a user, I want to export reports, so that I can share them", criteria(cfg, ""))
	if noCriteria.Score != cfg.MediumScore {
		t.Errorf("no criteria: got %d, want %d", noCriteria.Score, cfg.MediumScore)
	}

	shortStory := assessEstimable(cfg, "export reports", criteria(cfg, "Given X"))
	if shortStory.Score != cfg.MediumScore {
		t.Errorf("short story: got %d, want %d", shortStory.Score, cfg.MediumScore)
	}
}

func TestAssessSmall(t *testing.T) {
	cfg := DefaultConfig()

	small := assessSmall(cfg, "As a user, I want to export reports, so that I can share them", criteria(cfg, "Given X"))
	if small.Score != cfg.HighScore {
		t.Errorf("small story: got %d, want %d", small.Score, cfg.HighScore)
	}

	long := assessSmall(cfg, strings.Repeat("a very long story ", 20), criteria(cfg, ""))
	if long.Score != cfg.LowScore {
		t.Errorf("long story: got %d, want %d", long.Score, cfg.LowScore)
	}

	manyCriteria := assessSmall(cfg, "short story", criteria(cfg, strings.Repeat("a line\n", 8)))
	if manyCriteria.Score != cfg.LowScore {
		t.Errorf("too many criteria: got %d, want %d", manyCriteria.Score, cfg.LowScore)
	}

	atLimit := assessSmall(cfg, "short story", criteria(cfg, strings.Repeat("a line\n", 7)))
	if atLimit.Score != cfg.HighScore {
		t.Errorf("exactly max criteria: got %d, want %d", atLimit.Score, cfg.HighScore)
	}
}

func TestAssessTestable(t *testing.T) {
	cfg := DefaultConfig()

	none := assessTestable(cfg, criteria(cfg, ""))
	if none.Score != cfg.LowScore {
		t.Errorf("no criteria: got %d, want %d", none.Score, cfg.LowScore)
	}

	testable := assessTestable(cfg, criteria(cfg, "Given X\nWhen Y\nThen Z"))
	if testable.Score != cfg.HighScore {
		t.Errorf("testable criteria: got %d, want %d", testable.Score, cfg.HighScore)
	}

	vague := assessTestable(cfg, criteria(cfg, "make it fast\nlooks good"))
	if vague.Score != cfg.MediumScore {
		t.Errorf("vague criteria: got %d, want %d", vague.Score, cfg.MediumScore)
	}
	if !strings.Contains(vague.Justification, "2 of 2") {
		t.Errorf("justification should count non-testable lines, got %q", vague.Justification)
	}

	mixed := assessTestable(cfg, criteria(cfg, "Given X\nmake it fast"))
	if mixed.Score != cfg.HighScore {
		t.Errorf("mixed criteria: got %d, want %d", mixed.Score, cfg.HighScore)
	}
	if !strings.Contains(mixed.Justification, "1 of 2") {
		t.Errorf("justification should count non-testable lines, got %q", mixed.Justification)
	}
}
