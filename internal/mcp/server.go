// Package mcp exposes the document index over the Model Context Protocol so
// agents can search and navigate without shelling out to the CLI.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/search"
	"github.com/docdex/docdex/internal/store"
	"github.com/docdex/docdex/pkg/version"
)

// Server is the MCP server for docdex.
type Server struct {
	mcp    *mcp.Server
	cfg    *config.Config
	root   string
	store  *store.Store
	logger *slog.Logger
}

// NewServer creates an MCP server rooted at the given project root.
func NewServer(cfg *config.Config, root string) (*Server, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if root == "" {
		return nil, errors.New("project root is required")
	}

	s := &Server{
		cfg:    cfg,
		root:   root,
		store:  store.New(cfg.IndexPath(root)),
		logger: slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "docdex",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()

	return s, nil
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "TF-IDF ranked search over indexed documentation sections. Returns file, heading, hierarchy, line range, and a preview for each match. Optionally restrict to specific files.",
	}, s.searchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "peek",
		Description: "Preview the leading lines of a file without loading the whole document.",
	}, s.peekHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "topics",
		Description: "List all indexed section headers grouped by file, for navigating the documentation outline.",
	}, s.topicsHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_status",
		Description: "Check whether an index snapshot exists and report its statistics. Use before searching.",
	}, s.indexStatusHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", 4))
}

// fullIndex rebuilds the full in-memory index for the persisted snapshot's
// scope. Section bodies are never persisted, so previews require a rebuild.
func (s *Server) fullIndex() (*index.Index, error) {
	snap := s.store.Load()
	if snap == nil {
		return nil, errors.New("no index found: run 'docdex index' first")
	}
	return index.Build(index.BuildOptions{
		Root:   snap.Root,
		Path:   snap.ScanPath,
		Config: s.cfg,
	})
}

func (s *Server) searchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, errors.New("query parameter is required")
	}

	idx, err := s.fullIndex()
	if err != nil {
		return nil, SearchOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.Search.FindLimit
	}

	results := search.Search(idx, input.Query, search.Options{
		Limit:        limit,
		Files:        input.Files,
		PreviewChars: s.cfg.Search.PreviewChars,
	})

	out := SearchOutput{Results: make([]SearchResultOutput, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, SearchResultOutput{
			File:      r.File,
			Header:    r.Header,
			Hierarchy: r.Hierarchy,
			Score:     r.Score,
			Matched:   r.Matched,
			LineStart: r.LineStart,
			LineEnd:   r.LineEnd,
			Preview:   r.Preview,
		})
	}

	s.logger.Debug("mcp search complete",
		slog.String("query", input.Query),
		slog.Int("results", len(out.Results)))

	return nil, out, nil
}

func (s *Server) peekHandler(_ context.Context, _ *mcp.CallToolRequest, input PeekInput) (
	*mcp.CallToolResult,
	PeekOutput,
	error,
) {
	if input.File == "" {
		return nil, PeekOutput{}, errors.New("file parameter is required")
	}

	path := filepath.Join(s.root, input.File)
	if _, err := os.Stat(path); err != nil {
		path = input.File
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, PeekOutput{}, fmt.Errorf("file not found: %s", input.File)
	}

	limit := input.Lines
	if limit <= 0 {
		limit = 50
	}

	lines := strings.Split(string(data), "\n")
	remaining := 0
	if len(lines) > limit {
		remaining = len(lines) - limit
		lines = lines[:limit]
	}

	return nil, PeekOutput{File: input.File, Lines: lines, Remaining: remaining}, nil
}

func (s *Server) topicsHandler(_ context.Context, _ *mcp.CallToolRequest, _ TopicsInput) (
	*mcp.CallToolResult,
	TopicsOutput,
	error,
) {
	snap := s.store.Load()
	if snap == nil {
		return nil, TopicsOutput{}, errors.New("no index found: run 'docdex index' first")
	}

	byFile := map[string][]string{}
	seen := map[string]map[string]struct{}{}
	for _, sec := range snap.Sections {
		if sec.Header == "" || sec.Header == sec.File {
			continue
		}
		if seen[sec.File] == nil {
			seen[sec.File] = map[string]struct{}{}
		}
		if _, dup := seen[sec.File][sec.Header]; dup {
			continue
		}
		seen[sec.File][sec.Header] = struct{}{}
		byFile[sec.File] = append(byFile[sec.File], sec.Header)
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	out := TopicsOutput{Files: make([]TopicFile, 0, len(files))}
	for _, f := range files {
		out.Files = append(out.Files, TopicFile{File: f, Headers: byFile[f]})
	}
	return nil, out, nil
}

func (s *Server) indexStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	IndexStatusOutput,
	error,
) {
	snap := s.store.Load()
	if snap == nil {
		return nil, IndexStatusOutput{Present: false}, nil
	}

	return nil, IndexStatusOutput{
		Present:      true,
		Root:         snap.Root,
		Created:      snap.Created.Format("2006-01-02 15:04:05"),
		FileCount:    len(snap.Files),
		SectionCount: len(snap.Sections),
		IDFTerms:     len(snap.IDF),
		TotalTokens:  snap.TotalTokens,
		TotalChars:   snap.TotalChars,
	}, nil
}

// Serve runs the server over the stdio transport until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}
