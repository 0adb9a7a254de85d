package render

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

func analyzedReport(t *testing.T) *scoring.Report {
	t.Helper()
	cfg := scoring.DefaultConfig()
	return scoring.Analyze(cfg,
		"As a user, I want to export reports, so that I can share them",
		"Given a report\nThen it downloads")
}

func TestMarkdown(t *testing.T) {
	out := Markdown("stories/export.md", analyzedReport(t))

	for _, want := range []string{
		"# Story Analysis: stories/export.md",
		"## Clarity and Requirements",
		"## INVEST Assessment",
		"**Format** (10)",
		"**Testable**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown_OmitsEmptySections(t *testing.T) {
	cfg := scoring.DefaultConfig()
	// A strong story produces no decomposition suggestions.
	report := scoring.Analyze(cfg,
		"As a registered customer, I want to download my monthly invoice as a PDF, so that I can file it with my expense reports",
		"Given an invoice exists\nWhen I click download\nThen the PDF is saved")

	out := Markdown("inline", report)
	if strings.Contains(out, "## Story Decomposition") {
		t.Errorf("unexpected decomposition section:\n%s", out)
	}
}

func TestTerminal(t *testing.T) {
	out := Terminal("inline", analyzedReport(t))

	for _, want := range []string{
		"Story Analysis: inline",
		"Clarity and Requirements",
		"INVEST Assessment",
		"Independent",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminal_EmptyStory(t *testing.T) {
	cfg := scoring.DefaultConfig()
	out := Terminal("inline", scoring.Analyze(cfg, "", ""))

	if !strings.Contains(out, "0/100") {
		t.Errorf("expected zero rating in output:\n%s", out)
	}
	if !strings.Contains(out, "Please provide the user story text to analyze.") {
		t.Errorf("expected empty-story query in output:\n%s", out)
	}
}
