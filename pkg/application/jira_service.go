package application

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// JiraConfig holds the connection settings for a Jira Cloud site.
type JiraConfig struct {
	Domain     string `yaml:"domain"`
	ProjectKey string `yaml:"project_key"`
	Email      string `yaml:"email"`
	APIToken   string `yaml:"api_token"`
}

// Validate checks that all required Jira settings are present.
func (c *JiraConfig) Validate() error {
	if c.Domain == "" || c.ProjectKey == "" || c.Email == "" || c.APIToken == "" {
		return fmt.Errorf("jira configuration missing (domain, project_key, email, api_token required)")
	}
	return nil
}

// JiraService scores Jira issue descriptions as user stories using the Jira
// Cloud REST API with basic auth.
type JiraService struct {
	analysis *AnalysisService
	cfg      JiraConfig
	client   *http.Client
	baseURL  string
}

func NewJiraService(analysis *AnalysisService, cfg JiraConfig) (*JiraService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.Domain
	if !strings.HasPrefix(base, "http") {
		base = "https://" + base
	}

	return &JiraService{
		analysis: analysis,
		cfg:      cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  base,
	}, nil
}

type jiraIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
	} `json:"fields"`
}

type jiraSearchResponse struct {
	Issues []jiraIssue `json:"issues"`
}

// AnalyzeProject fetches up to limit issues from the configured project and
// scores each. The issue description is treated as the story document; an
// empty description falls back to the summary.
func (s *JiraService) AnalyzeProject(ctx context.Context, limit int) ([]*AnalysisResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	jql := fmt.Sprintf("project = %s ORDER BY created DESC", s.cfg.ProjectKey)
	endpoint := fmt.Sprintf("%s/rest/api/2/search?jql=%s&maxResults=%d&fields=summary,description",
		s.baseURL, url.QueryEscape(jql), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build jira request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(s.cfg.Email + ":" + s.cfg.APIToken))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jira issues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("jira search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var search jiraSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("decode jira response: %w", err)
	}

	var results []*AnalysisResult
	for _, issue := range search.Issues {
		body := issue.Fields.Description
		if strings.TrimSpace(body) == "" {
			body = issue.Fields.Summary
		}
		storyText, criteria := SplitStoryDocument(body)
		results = append(results, s.analysis.analyze(issue.Key, storyText, criteria))
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no issues found in project %s", s.cfg.ProjectKey)
	}
	return results, nil
}

// SetBaseURL overrides the API base URL, used by tests to point at a stub
// server.
func (s *JiraService) SetBaseURL(base string) {
	s.baseURL = strings.TrimSuffix(base, "/")
}
