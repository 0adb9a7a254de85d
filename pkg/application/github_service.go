package application

import (
	"context"
	"fmt"

	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

// GitHubService scores GitHub issue bodies as user stories. Issues often
// carry the story in the body with an "Acceptance Criteria" section, so the
// same document splitting applies.
type GitHubService struct {
	analysis *AnalysisService
	client   *github.Client
}

// NewGitHubService creates a service authenticated with token. An empty
// token yields an unauthenticated client, which is fine for public repos.
func NewGitHubService(ctx context.Context, analysis *AnalysisService, token string) *GitHubService {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = github.NewClient(nil)
	}
	return &GitHubService{analysis: analysis, client: client}
}

// NewGitHubServiceWithClient creates a service with a caller-supplied client,
// used by tests to point at a stub server.
func NewGitHubServiceWithClient(analysis *AnalysisService, client *github.Client) *GitHubService {
	return &GitHubService{analysis: analysis, client: client}
}

// AnalyzeIssues fetches up to limit open issues from owner/repo and scores
// each issue body as a story. Pull requests are skipped.
func (s *GitHubService) AnalyzeIssues(ctx context.Context, owner, repo string, limit int) ([]*AnalysisResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	issues, _, err := s.client.Issues.ListByRepo(ctx, owner, repo, &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("list issues for %s/%s: %w", owner, repo, err)
	}

	var results []*AnalysisResult
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}

		body := issue.GetBody()
		if body == "" {
			body = issue.GetTitle()
		}
		storyText, criteria := SplitStoryDocument(body)

		source := fmt.Sprintf("%s/%s#%d", owner, repo, issue.GetNumber())
		result := s.analysis.analyze(source, storyText, criteria)
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no open issues found in %s/%s", owner, repo)
	}
	return results, nil
}
