// Package story provides parsing primitives for raw user story text:
// canonical-template matching and acceptance-criteria splitting. The scoring
// engine consumes these results; keeping the regex behind the Matcher type
// means it can be swapped for a real parser without touching the scorers.
package story

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPattern matches the canonical story template
// "As a <persona>, I want <goal>, so that <value>". Both "As a" and "As an"
// are accepted. The value capture is greedy so trailing commas stay with it.
const DefaultPattern = `(?i)as an? (.+?), i want (.+?), so that (.+)`

// FormatMatch holds the persona, goal, and value clauses extracted from a
// story written in the canonical template.
type FormatMatch struct {
	Persona string `json:"persona"`
	Goal    string `json:"goal"`
	Value   string `json:"value"`
}

// Matcher extracts FormatMatch triples using a configured pattern.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles a matcher from a pattern with three capture groups.
func NewMatcher(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("compile story pattern: %w", err)
	}
	if re.NumSubexp() != 3 {
		return Matcher{}, fmt.Errorf("story pattern must have exactly 3 capture groups, got %d", re.NumSubexp())
	}
	return Matcher{re: re}, nil
}

// MustMatcher is like NewMatcher but panics on an invalid pattern.
// Intended for compile-time constant patterns such as DefaultPattern.
func MustMatcher(expr string) Matcher {
	m, err := NewMatcher(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Match extracts the persona/goal/value triple from a story. It returns nil
// when the story does not follow the canonical template or when the matcher
// is the zero value.
func (m Matcher) Match(text string) *FormatMatch {
	if m.re == nil {
		return nil
	}
	groups := m.re.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}
	return &FormatMatch{
		Persona: strings.TrimSpace(groups[1]),
		Goal:    strings.TrimSpace(groups[2]),
		Value:   strings.TrimSpace(groups[3]),
	}
}
