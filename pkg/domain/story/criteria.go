package story

import "strings"

// CriteriaList is the ordered set of non-blank acceptance-criteria lines,
// annotated with testability heuristics. Line order matches input order.
type CriteriaList struct {
	Lines []string `json:"lines"`

	// NonTestableCount is the number of lines containing none of the
	// testable keywords.
	NonTestableCount int `json:"non_testable_count"`

	// TestableKeywordFound reports whether at least one line contained a
	// testable keyword.
	TestableKeywordFound bool `json:"testable_keyword_found"`
}

// Count returns the number of retained criteria lines.
func (c CriteriaList) Count() int {
	return len(c.Lines)
}

// IsEmpty reports whether no criteria lines were retained.
func (c CriteriaList) IsEmpty() bool {
	return len(c.Lines) == 0
}

// SplitCriteria splits acceptance-criteria text into discrete lines and flags
// non-testable ones. Blank and whitespace-only lines are discarded. Each
// retained line is searched case-insensitively for the testable keywords;
// lines with none are tallied as non-testable. Absent or all-whitespace input
// yields the empty CriteriaList.
func SplitCriteria(text string, testableKeywords []string) CriteriaList {
	var list CriteriaList
	if strings.TrimSpace(text) == "" {
		return list
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		list.Lines = append(list.Lines, line)

		lower := strings.ToLower(line)
		testable := false
		for _, kw := range testableKeywords {
			if strings.Contains(lower, kw) {
				testable = true
				break
			}
		}
		if testable {
			list.TestableKeywordFound = true
		} else {
			list.NonTestableCount++
		}
	}
	return list
}
