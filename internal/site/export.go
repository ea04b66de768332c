package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/progress"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// Exporter writes every section of a registry as a static HTML site: one page
// per section, rendered from its Markdown form, plus an index of the tiles.
type Exporter struct {
	Registry  *content.Registry
	Tiles     []grid.Tile
	OutputDir string
	// Style is the chroma style used to highlight code fences.
	Style    string
	Reporter progress.Reporter
	// WriteMarkdown also writes each section's Markdown next to its page.
	WriteMarkdown bool
}

// NewExporter creates an Exporter for reg writing into outputDir.
func NewExporter(reg *content.Registry, tiles []grid.Tile, outputDir, style string) *Exporter {
	return &Exporter{
		Registry:  reg,
		Tiles:     tiles,
		OutputDir: outputDir,
		Style:     style,
		Reporter:  progress.Nop{},
	}
}

type exportLink struct {
	Key   string
	Title string
	Href  string
}

type exportPage struct {
	Title   string
	Nav     []exportLink
	Active  string
	Content template.HTML
}

type exportTile struct {
	grid.Tile
	Href string
}

type exportIndex struct {
	Name    string
	Tagline string
	Nav     []exportLink
	Tiles   []exportTile
}

// Export builds the site and returns the number of section pages written.
func (e *Exporter) Export() (int, error) {
	if e.Registry == nil {
		return 0, fmt.Errorf("export: no content registry")
	}
	sections := e.Registry.Sections()
	if len(sections) == 0 {
		return 0, fmt.Errorf("export: registry has no sections")
	}
	rep := e.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(e.OutputDir, "hub.css"), []byte(hubCSS+exportCSS), 0o644); err != nil {
		return 0, err
	}

	if err := WriteSearchIndex(BuildSearchIndex(e.Registry), filepath.Join(e.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	style := e.Style
	if style == "" {
		style = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	tmpl, err := template.New("export").Funcs(template.FuncMap{"icon": iconHTML}).Parse(exportPageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing export template: %w", err)
	}
	if _, err := tmpl.New("index").Parse(exportIndexTemplate); err != nil {
		return 0, fmt.Errorf("parsing index template: %w", err)
	}

	nav := make([]exportLink, 0, len(sections))
	for _, sec := range sections {
		nav = append(nav, exportLink{Key: sec.Key, Title: sec.Title, Href: sec.Key + ".html"})
	}

	rep.Start(len(sections) + 1)
	for i, sec := range sections {
		rep.Update(i+1, sec.Title)
		if err := e.writeSection(md, tmpl, nav, sec); err != nil {
			return 0, fmt.Errorf("exporting %s: %w", sec.Key, err)
		}
	}

	rep.Update(len(sections)+1, "index")
	if err := e.writeIndex(tmpl, nav); err != nil {
		return 0, fmt.Errorf("exporting index: %w", err)
	}
	rep.Finish()
	return len(sections), nil
}

func (e *Exporter) writeSection(md goldmark.Markdown, tmpl *template.Template, nav []exportLink, sec *content.Section) error {
	src := viewer.Markdown(sec)
	if e.WriteMarkdown {
		if err := os.WriteFile(filepath.Join(e.OutputDir, sec.Key+".md"), []byte(src), 0o644); err != nil {
			return err
		}
	}

	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(src), &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	return writeTemplate(filepath.Join(e.OutputDir, sec.Key+".html"), tmpl, "export", exportPage{
		Title:   sec.Title,
		Nav:     nav,
		Active:  sec.Key,
		Content: template.HTML(htmlBuf.String()),
	})
}

func (e *Exporter) writeIndex(tmpl *template.Template, nav []exportLink) error {
	data := exportIndex{Name: content.HubName, Tagline: content.Tagline, Nav: nav}
	for _, t := range e.Tiles {
		et := exportTile{Tile: t}
		if _, ok := e.Registry.Section(t.Section); ok {
			et.Href = t.Section + ".html"
		}
		data.Tiles = append(data.Tiles, et)
	}
	return writeTemplate(filepath.Join(e.OutputDir, "index.html"), tmpl, "index", data)
}

func writeTemplate(path string, tmpl *template.Template, name string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(f, name, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const exportPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · GitMesh Docs</title>
  <link rel="stylesheet" href="hub.css">
</head>
<body class="docs export">
  <header class="docs-header">
    <div class="header-row">
      <div class="header-left">
        <a class="back-link" href="index.html">{{icon "arrow-left" "xs"}}Back to Hub</a>
        <span class="divider"></span>
        <div class="section-title"><h1>{{.Title}}</h1></div>
      </div>
    </div>
  </header>
  <div class="docs-body">
    <nav class="tab-nav">
      <div class="nav-label">Sections</div>
      {{range .Nav}}<a class="tab{{if eq .Key $.Active}} active{{end}}" href="{{.Href}}">{{.Title}}</a>
      {{end}}
    </nav>
    <main class="tab-content markdown-body">
      {{.Content}}
    </main>
  </div>
</body>
</html>`

const exportIndexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>GitMesh Docs</title>
  <link rel="stylesheet" href="hub.css">
</head>
<body class="landing export">
  <main class="export-index">
    <h1 class="brand">{{.Name}} <em>Docs</em></h1>
    <p class="tagline">{{.Tagline}}</p>
    <div class="export-tiles">
      {{range .Tiles}}{{if .Href}}<a class="export-tile" href="{{.Href}}">{{else}}<div class="export-tile disabled">{{end}}
        <h3>{{.Title}}</h3>
        <p>{{.Description}}</p>
        <span class="tile-badge">{{.Section}}</span>
      {{if .Href}}</a>{{else}}</div>{{end}}
      {{end}}
    </div>
  </main>
</body>
</html>`

const exportCSS = `
/* Export */
.export-index { max-width: 64rem; margin: 0 auto; padding: 48px 24px; display: flex; flex-direction: column; gap: 24px; }
.export-tiles { display: grid; grid-template-columns: repeat(3, 1fr); gap: 12px; }
.export-tile { display: flex; flex-direction: column; align-items: flex-start; gap: 8px; padding: 16px; border: 1px solid var(--line); border-radius: 8px; background: var(--panel); }
.export-tile:hover { border-color: rgba(59, 130, 246, 0.5); }
.export-tile.disabled { opacity: 0.5; }
.export-tile p { color: var(--text-dim); font-size: 13px; }
.markdown-body h1, .markdown-body h2 { margin: 8px 0; }
.markdown-body h3, .markdown-body h4, .markdown-body h5, .markdown-body h6 { margin: 4px 0; font-size: 14px; }
.markdown-body blockquote { padding: 16px; border: 1px solid rgba(59, 130, 246, 0.2); border-radius: 8px; background: rgba(59, 130, 246, 0.1); color: rgba(255, 255, 255, 0.8); }
.markdown-body ul { padding-left: 20px; }
.markdown-body code { font-family: var(--mono); font-size: 12px; }
.markdown-body pre { padding: 12px 16px; border: 1px solid var(--line); border-radius: 8px; overflow-x: auto; }
`
