package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

// AnalysisResult wraps an engine Report with the metadata collaborators need
// to route it: a unique ID, the source of the story, and when it was scored.
type AnalysisResult struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Story      string          `json:"story"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
	Report     *scoring.Report `json:"report"`
}

// AnalysisService runs the scoring engine over raw text, story files, and
// directories of story files.
type AnalysisService struct {
	cfg scoring.Config
}

func NewAnalysisService(cfg scoring.Config) *AnalysisService {
	return &AnalysisService{cfg: cfg}
}

// Config returns the scoring configuration the service was built with.
func (s *AnalysisService) Config() scoring.Config {
	return s.cfg
}

// Analyze scores raw story text with optional acceptance criteria.
func (s *AnalysisService) Analyze(storyText, acceptanceCriteria string) *AnalysisResult {
	return s.analyze("inline", storyText, acceptanceCriteria)
}

// AnalyzeFile reads a story file and scores it. The file holds the story
// text; an "Acceptance Criteria" heading or a "---" divider separates the
// acceptance criteria from the story.
func (s *AnalysisService) AnalyzeFile(path string) (*AnalysisResult, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read story file: %w", err)
	}

	storyText, criteria := SplitStoryDocument(string(data))
	return s.analyze(path, storyText, criteria), nil
}

// AnalyzeDirectory walks root for story files (.md, .story, .txt) and scores
// each. Hidden files and directories are skipped. Results follow walk order.
func (s *AnalysisService) AnalyzeDirectory(root string) ([]*AnalysisResult, error) {
	var results []*AnalysisResult

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") || !isStoryFile(info.Name()) {
			return nil
		}

		result, err := s.AnalyzeFile(path)
		if err != nil {
			return nil // unreadable files are skipped, not fatal
		}
		results = append(results, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk story directory: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no story files found in %s", root)
	}
	return results, nil
}

func (s *AnalysisService) analyze(source, storyText, criteria string) *AnalysisResult {
	return &AnalysisResult{
		ID:         uuid.NewString(),
		Source:     source,
		Story:      strings.TrimSpace(storyText),
		AnalyzedAt: time.Now().UTC(),
		Report:     scoring.Analyze(s.cfg, storyText, criteria),
	}
}

func isStoryFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".story", ".txt":
		return true
	default:
		return false
	}
}

// SplitStoryDocument separates a story document into story text and
// acceptance-criteria text. An "Acceptance Criteria" heading (any markdown
// level, or with a trailing colon) starts the criteria section; a "---"
// divider works the same way. Without either, the whole document is story
// text.
func SplitStoryDocument(content string) (storyText, criteria string) {
	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		line := strings.ToLower(strings.TrimSpace(raw))
		line = strings.TrimLeft(line, "# ")
		line = strings.TrimSuffix(line, ":")
		if line == "acceptance criteria" || strings.TrimSpace(raw) == "---" {
			return strings.TrimSpace(strings.Join(lines[:i], "\n")),
				strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return strings.TrimSpace(content), ""
}
