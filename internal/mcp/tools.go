package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listSectionsTool defines the list_sections MCP tool.
var listSectionsTool = mcp.NewTool("list_sections",
	mcp.WithDescription("List every GitMesh documentation section with its title and tabs."),
)

// readSectionTool defines the read_section MCP tool.
var readSectionTool = mcp.NewTool("read_section",
	mcp.WithDescription("Read a GitMesh documentation section as Markdown, optionally limited to one tab."),
	mcp.WithString("section",
		mcp.Required(),
		mcp.Description("Section key, e.g. guide or reference"),
	),
	mcp.WithString("tab",
		mcp.Description("Tab key within the section, e.g. installation (default: whole section)"),
	),
)

// findSnippetsTool defines the find_snippets MCP tool.
var findSnippetsTool = mcp.NewTool("find_snippets",
	mcp.WithDescription("Find command and configuration snippets by content path. Paths look like section/tab/key; patterns use ** and * globs."),
	mcp.WithString("pattern",
		mcp.Required(),
		mcp.Description("Glob over snippet paths, e.g. guide/installation/* or **/docker*"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of snippets to return (default 20)"),
	),
)
