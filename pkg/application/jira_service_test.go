package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testJiraConfig() JiraConfig {
	return JiraConfig{
		Domain:     "acme.atlassian.net",
		ProjectKey: "WEB",
		Email:      "dev@acme.test",
		APIToken:   "token",
	}
}

func TestJiraAnalyzeProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/rest/api/2/search") {
			http.NotFound(w, r)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		resp := jiraSearchResponse{
			Issues: []jiraIssue{
				{Key: "WEB-1"},
				{Key: "WEB-2"},
			},
		}
		resp.Issues[0].Fields.Summary = "Export reports"
		resp.Issues[0].Fields.Description = "As a user, I want to export reports, so that I can share them\n\nAcceptance Criteria:\nGiven a report\nThen it downloads"
		resp.Issues[1].Fields.Summary = "Fix the build"
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode stub response: %v", err)
		}
	}))
	defer server.Close()

	svc, err := NewJiraService(newTestService(), testJiraConfig())
	if err != nil {
		t.Fatalf("new jira service: %v", err)
	}
	svc.SetBaseURL(server.URL)

	results, err := svc.AnalyzeProject(context.Background(), 10)
	if err != nil {
		t.Fatalf("analyze project: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Source != "WEB-1" {
		t.Errorf("source: got %q", results[0].Source)
	}
	if got := results[0].Report.ClarityAndRequirementAnalysis.AcceptanceCriteria.Score; got != 15 {
		t.Errorf("acceptance criteria score: got %d, want 15", got)
	}
	// WEB-2 has no description, so the summary is scored.
	if results[1].Story != "Fix the build" {
		t.Errorf("fallback story: got %q", results[1].Story)
	}
}

func TestJiraAnalyzeProject_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	svc, err := NewJiraService(newTestService(), testJiraConfig())
	if err != nil {
		t.Fatalf("new jira service: %v", err)
	}
	svc.SetBaseURL(server.URL)

	if _, err := svc.AnalyzeProject(context.Background(), 10); err == nil {
		t.Error("expected error for failing search")
	}
}

func TestJiraConfigValidate(t *testing.T) {
	cfg := testJiraConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.APIToken = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing token")
	}
}
