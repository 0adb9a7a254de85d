// Package mcp exposes story analysis to MCP clients over stdio, HTTP,
// WebSocket, and gRPC transports.
package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/storylint/pkg/application"
	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// Server wraps the analysis service behind MCP tools.
type Server struct {
	mcpServer *mcp.Server
	service   *application.AnalysisService
}

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted — only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// NewServer creates an MCP server backed by the given analysis service.
func NewServer(service *application.AnalysisService) *Server {
	info := mcp.ServerInfo{
		Name:    "storylint",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Storylint MCP Server"),
			mcp.WithDescription("Storylint scores user stories for clarity and INVEST readiness and suggests concrete improvements."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/storylint"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to score user stories, analyze story files or directories, and inspect the scoring configuration."),
		),
		service: service,
	}

	s.registerTools()
	return s
}

type AnalyzeArgs struct {
	Story              string `json:"story" jsonschema:"description=The user story text to score"`
	AcceptanceCriteria string `json:"acceptance_criteria,omitempty" jsonschema:"description=Acceptance criteria, one per line"`
}

type AnalyzeFileArgs struct {
	Path string `json:"path" jsonschema:"description=Path to a story file (.md, .story, .txt)"`
}

type AnalyzeDirectoryArgs struct {
	Path string `json:"path" jsonschema:"description=Directory to scan for story files"`
}

func (s *Server) registerTools() {
	// Tool: storylint_analyze
	s.mcpServer.Tool("storylint_analyze").
		Description("Score a user story for clarity and INVEST readiness, returning the full report").
		Handler(s.handleAnalyze)

	// Tool: storylint_analyze_file
	s.mcpServer.Tool("storylint_analyze_file").
		Description("Read a story file and score it; an 'Acceptance Criteria' heading or '---' divider separates the criteria").
		Handler(s.handleAnalyzeFile)

	// Tool: storylint_analyze_directory
	s.mcpServer.Tool("storylint_analyze_directory").
		Description("Scan a directory tree for story files and score each one").
		Handler(s.handleAnalyzeDirectory)

	// Tool: storylint_config
	s.mcpServer.Tool("storylint_config").
		Description("Inspect the active scoring configuration: thresholds, keyword sets, and readiness bands").
		Handler(s.handleConfig)
}

func (s *Server) handleAnalyze(ctx context.Context, args AnalyzeArgs) (any, error) {
	result := s.service.Analyze(args.Story, args.AcceptanceCriteria)
	return result.Report, nil
}

func (s *Server) handleAnalyzeFile(ctx context.Context, args AnalyzeFileArgs) (any, error) {
	if args.Path == "" {
		return nil, mcpErr("A file path is required.")
	}
	result, err := s.service.AnalyzeFile(args.Path)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Unable to read story file %s.", args.Path))
	}
	return result, nil
}

func (s *Server) handleAnalyzeDirectory(ctx context.Context, args AnalyzeDirectoryArgs) (any, error) {
	if args.Path == "" {
		return nil, mcpErr("A directory path is required.")
	}
	results, err := s.service.AnalyzeDirectory(args.Path)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("No analyzable story files found in %s.", args.Path))
	}

	type summary struct {
		Source   string `json:"source"`
		Rating   int    `json:"rating"`
		Category string `json:"category"`
	}
	summaries := make([]summary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, summary{
			Source:   r.Source,
			Rating:   r.Report.OverallReadinessScore.ReadinessRating,
			Category: r.Report.OverallReadinessScore.ReadinessCategory,
		})
	}
	return summaries, nil
}

func (s *Server) handleConfig(ctx context.Context, args struct{}) (any, error) {
	cfg := s.service.Config()

	type bandResp struct {
		Threshold int    `json:"threshold"`
		Label     string `json:"label"`
	}
	type configResp struct {
		ShortStoryLength   int        `json:"short_story_length"`
		LongStoryLength    int        `json:"long_story_length"`
		MaxCriteriaCount   int        `json:"max_criteria_count"`
		AmbiguousKeywords  []string   `json:"ambiguous_keywords"`
		DependencyKeywords []string   `json:"dependency_keywords"`
		TechnicalKeywords  []string   `json:"technical_keywords"`
		TestableKeywords   []string   `json:"testable_keywords"`
		Bands              []bandResp `json:"bands"`
	}

	resp := configResp{
		ShortStoryLength:   cfg.ShortStoryLength,
		LongStoryLength:    cfg.LongStoryLength,
		MaxCriteriaCount:   cfg.MaxCriteriaCount,
		AmbiguousKeywords:  cfg.AmbiguousKeywords,
		DependencyKeywords: cfg.DependencyKeywords,
		TechnicalKeywords:  cfg.TechnicalKeywords,
		TestableKeywords:   cfg.TestableKeywords,
	}
	for _, b := range cfg.Bands {
		resp.Bands = append(resp.Bands, bandResp{Threshold: b.Threshold, Label: b.Label})
	}
	return resp, nil
}

// ScoringConfig reports the configuration the server scores with. Exposed for
// callers embedding the server.
func (s *Server) ScoringConfig() scoring.Config {
	return s.service.Config()
}

func (s *Server) Start() error {
	return s.StartStdio()
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) StartWebSocket(addr string) error {
	return s.ServeWebSocket(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}

func (s *Server) StartGRPC(addr string) error {
	return s.ServeGRPC(context.Background(), addr)
}

func (s *Server) ServeGRPC(ctx context.Context, addr string) error {
	return mcp.ServeGRPC(ctx, s.mcpServer, addr)
}
