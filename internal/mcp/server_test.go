package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gitmesh/docs-hub/internal/content"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg, err := content.Default()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	return NewServer(reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_sections", listSectionsTool, "list_sections"},
		{"read_section", readSectionTool, "read_section"},
		{"find_snippets", findSnippetsTool, "find_snippets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.reg == nil {
		t.Error("registry not set")
	}

	if NewServer(srv.reg, nil).log == nil {
		t.Error("nil logger should fall back to the default logger")
	}
}

func TestHandleListSections(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleListSections(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	text := extractText(result)
	for _, want := range []string{
		"Found 8 section(s)",
		"- guide: Getting Started",
		"tabs: overview, prerequisites, installation, quickStart",
		"- support: ",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "community") {
		t.Error("community is not a registry section")
	}
}

func TestHandleReadSection(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		want      []string
		notWant   []string
	}{
		{
			name: "whole section",
			args: map[string]any{"section": "guide"},
			want: []string{"# Getting Started\n", "> Welcome to GitMesh!", "## Installation", "Install via npm"},
		},
		{
			name:    "one tab",
			args:    map[string]any{"section": "guide", "tab": "installation"},
			want:    []string{"## Installation", "_Installation Methods_", "npm install -g @gitmesh/cli@latest"},
			notWant: []string{"# Getting Started", "## Prerequisites"},
		},
		{
			name: "overview tab",
			args: map[string]any{"section": "guide", "tab": "overview"},
			want: []string{"> Welcome to GitMesh!"},
		},
		{
			name:      "unknown section",
			args:      map[string]any{"section": "community"},
			wantError: true,
			want:      []string{`Section "community" not found`},
		},
		{
			name:      "unknown tab",
			args:      map[string]any{"section": "guide", "tab": "bogus"},
			wantError: true,
			want:      []string{`Tab "bogus" not found`, "installation"},
		},
		{
			name:      "missing section",
			args:      map[string]any{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mcp.CallToolRequest{}
			req.Params.Arguments = tt.args

			result, err := srv.handleReadSection(ctx, req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError != tt.wantError {
				t.Fatalf("IsError = %v, want %v: %s", result.IsError, tt.wantError, extractText(result))
			}
			text := extractText(result)
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("output missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(text, w) {
					t.Errorf("output should not contain %q", w)
				}
			}
		})
	}
}

func TestHandleFindSnippets(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("glob match", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"pattern": "guide/installation/*"}

		result, err := srv.handleFindSnippets(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		for _, want := range []string{
			"Found 6 snippet(s):",
			"--- guide/installation/npm ---",
			"Label: Terminal",
			"```\n# Install via npm",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("output missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"pattern": "guide/installation/*", "limit": float64(2)}

		result, _ := srv.handleFindSnippets(ctx, req)
		text := extractText(result)
		if !strings.Contains(text, "Found 6 snippet(s), showing 2:") {
			t.Errorf("unexpected header:\n%s", text)
		}
		if got := strings.Count(text, "\n--- "); got != 2 {
			t.Errorf("got %d snippets, want 2", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"pattern": "nothing/here"}

		result, _ := srv.handleFindSnippets(ctx, req)
		if result.IsError {
			t.Error("no matches should not be an error")
		}
		if !strings.Contains(extractText(result), "No snippets match") {
			t.Errorf("unexpected output: %s", extractText(result))
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"pattern": "guide/["}

		result, _ := srv.handleFindSnippets(ctx, req)
		if !result.IsError {
			t.Error("expected error for invalid pattern")
		}
	})

	t.Run("missing pattern", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, _ := srv.handleFindSnippets(ctx, req)
		if !result.IsError {
			t.Error("expected error for missing pattern")
		}
	})
}
