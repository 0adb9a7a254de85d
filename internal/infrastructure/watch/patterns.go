package watch

import (
	"path/filepath"
	"strings"
)

// storyExtensions are the file types the analyzer understands.
var storyExtensions = []string{".md", ".markdown", ".story", ".txt"}

// StoryFileFilter decides which changed paths are story files worth
// re-scoring. Hidden files never match; exclude globs trim the default
// extension set, and extra include globs widen it.
type StoryFileFilter struct {
	extraInclude []string
	exclude      []string
}

// NewStoryFileFilter creates a filter for the default story file types.
// Include globs admit paths beyond the default extensions; exclude globs
// always win.
func NewStoryFileFilter(include, exclude []string) *StoryFileFilter {
	return &StoryFileFilter{
		extraInclude: include,
		exclude:      exclude,
	}
}

// Matches reports whether path is a story file the watcher should re-score.
func (f *StoryFileFilter) Matches(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}

	for _, pattern := range f.exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return false
		}
	}

	ext := strings.ToLower(filepath.Ext(base))
	for _, want := range storyExtensions {
		if ext == want {
			return true
		}
	}

	for _, pattern := range f.extraInclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
