package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// handleListSections returns one line per section with its tab keys.
func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sections := s.reg.Sections()
	if len(sections) == 0 {
		return mcp.NewToolResultText("No documentation sections are loaded."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d section(s):\n", len(sections)))
	for _, sec := range sections {
		sb.WriteString(fmt.Sprintf("\n- %s: %s\n", sec.Key, sec.Title))
		sb.WriteString(fmt.Sprintf("  tabs: %s\n", strings.Join(sec.Content.Keys(), ", ")))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleReadSection renders a section, or one of its tabs, as Markdown.
func (s *Server) handleReadSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: section"), nil
	}

	sec, ok := s.reg.Section(key)
	if !ok {
		s.log.Debug("mcp section not found", "section", key)
		return mcp.NewToolResultError(fmt.Sprintf(
			"Section %q not found. Use list_sections to see the available sections.", key,
		)), nil
	}

	tab := request.GetString("tab", "")
	if tab == "" {
		return mcp.NewToolResultText(viewer.Markdown(sec)), nil
	}

	n, ok := sec.Content.Get(tab)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Tab %q not found in %s. Available tabs: %s", tab, key, strings.Join(sec.Content.Keys(), ", "),
		)), nil
	}
	return mcp.NewToolResultText(viewer.TabMarkdown(sec, tab, n)), nil
}

// handleFindSnippets returns every content value whose path matches the
// pattern, with code fences around command snippets.
func (s *Server) handleFindSnippets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := request.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pattern"), nil
	}

	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	matches, err := s.reg.Glob(pattern)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid pattern: %v", err)), nil
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No snippets match %q.", pattern)), nil
	}

	return mcp.NewToolResultText(formatSnippets(matches, limit)), nil
}

// formatSnippets converts glob matches into a text format optimized for AI
// agent consumption.
func formatSnippets(matches []content.Match, limit int) string {
	var sb strings.Builder
	shown := min(len(matches), limit)
	sb.WriteString(fmt.Sprintf("Found %d snippet(s)", len(matches)))
	if shown < len(matches) {
		sb.WriteString(fmt.Sprintf(", showing %d", shown))
	}
	sb.WriteString(":\n")

	for _, m := range matches[:shown] {
		text := content.Text(m.Node)
		sb.WriteString(fmt.Sprintf("\n--- %s ---\n", m.Path))
		if _, ok := m.Node.(content.Leaf); ok {
			sb.WriteString(fmt.Sprintf("Label: %s\n", viewer.CodeLabel(text)))
			sb.WriteString("```\n")
			sb.WriteString(text)
			sb.WriteString("\n```\n")
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}
