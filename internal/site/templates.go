package site

import (
	"fmt"
	"html/template"

	"github.com/gitmesh/docs-hub/internal/viewer"
)

func parsePages() (*template.Template, error) {
	funcs := template.FuncMap{
		"icon":      iconHTML,
		"labelIcon": labelIcon,
		"asCode": func(b viewer.Block) *viewer.CodeBlock {
			c, _ := b.(*viewer.CodeBlock)
			return c
		},
		"asText": func(b viewer.Block) *viewer.TextBlock {
			t, _ := b.(*viewer.TextBlock)
			return t
		},
		"asStack": func(b viewer.Block) *viewer.Stack {
			s, _ := b.(*viewer.Stack)
			return s
		},
	}
	t := template.New("hub").Funcs(funcs)
	for name, src := range map[string]string{
		"head":     headTemplate,
		"block":    blockTemplate,
		"landing":  landingTemplate,
		"docs":     docsTemplate,
		"notfound": notFoundTemplate,
	} {
		if _, err := t.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
	}
	return t, nil
}

func labelIcon(label string) string {
	if label == viewer.LabelTerminal {
		return "terminal"
	}
	return "settings"
}

const headTemplate = `<meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.}} · GitMesh Docs</title>
  <link rel="stylesheet" href="/static/hub.css">
  <script src="/static/hub.js" defer></script>`

// blockTemplate draws a rendered content tree. It calls itself for the body
// of every group.
const blockTemplate = `{{with asCode .}}<div class="code-block">
  <div class="code-header">
    <span class="code-label">{{icon (labelIcon .Label) "xs"}}{{.Label}}</span>
    <button type="button" class="copy-btn" data-copy-id="{{.ID}}" aria-label="Copy to clipboard">{{icon "copy" "xs icon-copy"}}{{icon "check-circle" "xs icon-copied"}}<span class="copy-label">Copy</span></button>
  </div>
  <pre><code>{{.Text}}</code></pre>
</div>{{end}}{{with asText .}}<div class="scalar">{{.Text}}</div>{{end}}{{with asStack .}}<div class="stack depth-{{.Depth}}">
  {{range .Groups}}<section class="group">
    <h3 class="group-heading depth-{{.Depth}}">{{icon .Icon "xs"}}<span>{{.Heading}}</span></h3>
    {{template "block" .Body}}
  </section>{{end}}
</div>{{end}}`

const landingTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  {{template "head" "Hub"}}
</head>
<body class="landing">
  <main class="landing-main">
    <section class="intro">
      <h1 class="brand">{{.Name}} <em>Docs</em></h1>
      <p class="tagline">{{.Tagline}}</p>
      <a class="repo-link" href="{{.RepoURL}}" target="_blank" rel="noopener noreferrer">{{icon "github" "sm"}}<span>GitHub</span><span class="stars">⭐ {{.RepoStars}}</span></a>
      <div class="supporters">
        <div class="supporters-label">Supported by</div>
        <div class="supporters-logos">
          <img src="/media/lfdt.png" alt="Linux Foundation">
          <img src="/media/aifaq.png" alt="AIFAQ">
        </div>
      </div>
    </section>

    <section class="grid-panel">
      {{if .Dev}}
      <div class="dev-bar" id="dev-bar"{{if .Clean}} hidden{{end}}>
        <h2>GitMesh Docs</h2>
        <div class="dev-actions">
          <button type="button" id="toggle-controls">Show Controls</button>
          <button type="button" id="update-codebase">Update Codebase</button>
          <button type="button" id="toggle-ui">Hide UI</button>
        </div>
      </div>
      <div class="dev-controls" id="dev-controls" hidden>
        <label for="hover-size">Hover Size: <output id="hover-size-value">{{.Layout.HoverWeight}}</output></label>
        <input type="range" id="hover-size" min="4" max="8" step="0.1" value="{{.Layout.HoverWeight}}">
        <label for="gap-size">Gap Size: <output id="gap-size-value">{{.Layout.Gap}}</output>px</label>
        <input type="range" id="gap-size" min="0" max="20" step="1" value="{{.Layout.Gap}}">
      </div>
      <button type="button" class="show-ui" id="show-ui"{{if not .Clean}} hidden{{end}}>Show UI</button>
      {{end}}

      <div class="tile-grid" id="tile-grid" style="grid-template-rows: {{.Layout.Rows.None}}; grid-template-columns: {{.Layout.Cols.None}}; gap: {{.Layout.Gap}}px; transition-duration: {{.Layout.TransitionMS}}ms">
        {{range .Layout.Tiles}}
        <div class="tile" data-tile-id="{{.ID}}" data-row="{{.Cell.Row}}" data-col="{{.Cell.Col}}" style="transform-origin: {{.Origin}}; transition-duration: {{$.Layout.TransitionMS}}ms">
          <a class="tile-link" href="{{.Href}}" aria-label="{{.Title}}">
            <div class="tile-media" style="--media-size: {{.Params.MediaSize}}; --border-thickness: {{.Params.BorderThickness}}px; --border-size: {{.Params.BorderSize}}%">
              <video src="/media{{.Media.Video}}" autoplay muted loop playsinline></video>
            </div>
            <div class="tile-overlay">
              <h3>{{.Title}}</h3>
              <p>{{.Description}}</p>
              <span class="tile-badge">{{.Section}}</span>
            </div>
          </a>
          {{if $.Dev}}
          <div class="tile-controls" hidden>
            <label>Media Size <input type="range" data-param="mediaSize" min="0.5" max="3" step="0.1" value="{{.Params.MediaSize}}"></label>
            <label>Border Thickness <input type="range" data-param="borderThickness" min="0" max="50" step="1" value="{{.Params.BorderThickness}}"></label>
            <label>Border Size <input type="range" data-param="borderSize" min="50" max="100" step="1" value="{{.Params.BorderSize}}"></label>
          </div>
          {{end}}
        </div>
        {{end}}
      </div>
    </section>
  </main>
  <script id="hub-config" type="application/json">{{.Config}}</script>
</body>
</html>`

const docsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  {{template "head" .Title}}
</head>
<body class="docs">
  <header class="docs-header">
    <div class="header-row">
      <div class="header-left">
        <a class="back-link" href="/">{{icon "arrow-left" "xs"}}Back to Hub</a>
        <span class="divider"></span>
        <div class="section-title">{{icon .Icon "sm"}}<h1>{{.Title}}</h1></div>
      </div>
      <div class="header-right">{{.HubTitle}}</div>
    </div>
    <form class="search-row" id="search-form" method="get">
      <input type="hidden" name="tab" value="{{.ActiveTab}}">
      <label class="search-box">{{icon "search" "xs"}}<input type="text" name="q" placeholder="Search documentation..." value="{{.Search}}"></label>
      <label class="filter-box">{{icon "filter" "xs"}}<select name="filter" id="filter-select">{{range .Filters}}
        <option value="{{.Value}}"{{if eq .Value $.Filter}} selected{{end}}>{{.Label}}</option>{{end}}
      </select></label>
    </form>
  </header>

  <div class="docs-body">
    <nav class="tab-nav">
      <div class="nav-label">Sections</div>
      {{range .Tabs}}<a class="tab{{if eq .Key $.ActiveTab}} active{{end}}" href="{{call $.TabQuery .Key}}">{{icon .Icon "xs"}}<span>{{.Label}}</span></a>
      {{end}}
    </nav>

    <main class="tab-content">
      {{with .Overview}}
      <div class="callout">
        {{icon "info" "sm"}}
        <div>
          <h2>Overview</h2>
          <p class="overview-text">{{.Text}}</p>
        </div>
      </div>
      {{if .HasFiles}}
      <h3 class="files-heading">{{icon "database" "sm"}}File Structure Reference</h3>
      <div class="files">
        <div class="files-header">{{icon "file-text" "xs"}}<span>Project Structure</span></div>
        <div class="files-body">
          {{range .Files}}<div class="file-entry">
            <div class="file-row"><code>{{.Path}}</code><span>{{.Description}}</span></div>
            {{if .Children}}<div class="file-children">
              {{range .Children}}<div class="file-row child"><code>{{.Path}}</code><span>{{.Description}}</span></div>
              {{end}}
            </div>{{end}}
          </div>
          {{end}}
        </div>
      </div>
      {{end}}
      {{else}}
      <div class="tab-header">
        {{icon "terminal" "sm"}}<h2>{{.Heading}}</h2>
        <span class="spacer"></span>
        <span class="updated">{{icon "clock" "xs"}}Last updated: {{.LastUpdated}}</span>
      </div>
      {{with .TabTitle}}<p class="tab-title">{{.}}</p>{{end}}
      {{with .Body}}{{template "block" .}}{{end}}
      {{end}}
    </main>
  </div>
  <script id="hub-config" type="application/json">{{.Config}}</script>
</body>
</html>`

const notFoundTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  {{template "head" "Not found"}}
</head>
<body class="docs not-found">
  <main class="not-found-main">
    <a class="back-link" href="/">{{icon "arrow-left" "xs"}}Back to Documentation Hub</a>
    <h1>Section not found</h1>
  </main>
</body>
</html>`

const hubCSS = `:root {
  --bg: #0a0a0a;
  --panel: #0d1117;
  --text: #ffffff;
  --text-dim: rgba(255, 255, 255, 0.7);
  --text-faint: rgba(255, 255, 255, 0.4);
  --line: rgba(255, 255, 255, 0.1);
  --accent: #60a5fa;
  --accent-bg: rgba(59, 130, 246, 0.2);
  --green: #4ade80;
  --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Inter, Roboto, sans-serif;
  --mono: "SF Mono", "Fira Code", Consolas, monospace;
}

* { box-sizing: border-box; margin: 0; padding: 0; }
[hidden] { display: none !important; }
body { background: var(--bg); color: var(--text); font-family: var(--font); font-size: 14px; line-height: 1.5; min-height: 100vh; }
a { color: inherit; text-decoration: none; }
button { font: inherit; cursor: pointer; }

.icon { flex-shrink: 0; vertical-align: middle; }
.icon.xs { width: 12px; height: 12px; }
.icon.sm { width: 16px; height: 16px; }
.icon.md { width: 20px; height: 20px; }

/* Landing */
.landing-main { display: grid; grid-template-columns: minmax(260px, 1fr) 2fr; gap: 32px; padding: 32px; min-height: 100vh; }
.intro { display: flex; flex-direction: column; justify-content: center; gap: 24px; }
.brand { font-size: 48px; font-weight: 700; letter-spacing: -0.02em; }
.brand em { font-weight: 200; font-style: italic; }
.tagline { color: var(--text-dim); max-width: 28em; }
.repo-link { display: inline-flex; align-items: center; gap: 8px; align-self: flex-start; padding: 8px 14px; border: 1px solid var(--line); border-radius: 8px; background: rgba(255, 255, 255, 0.05); }
.repo-link:hover { background: rgba(255, 255, 255, 0.1); }
.stars { color: var(--text-dim); font-size: 12px; }
.supporters-label { color: var(--text-faint); font-size: 12px; font-weight: 500; text-transform: uppercase; letter-spacing: 0.08em; margin-bottom: 8px; }
.supporters-logos { display: flex; gap: 16px; align-items: center; }
.supporters-logos img { height: 32px; opacity: 0.8; }

.grid-panel { display: flex; flex-direction: column; gap: 16px; min-height: 0; }
.dev-bar { display: flex; justify-content: space-between; align-items: center; }
.dev-bar h2 { font-size: 24px; }
.dev-actions { display: flex; gap: 8px; }
.dev-actions button, .show-ui { padding: 6px 12px; border-radius: 6px; border: 1px solid var(--line); background: #18181b; color: var(--text); }
.show-ui { align-self: flex-end; opacity: 0.4; }
.show-ui:hover { opacity: 1; }
.dev-controls { display: grid; gap: 8px; color: #e5e7eb; font-size: 13px; }

.tile-grid { flex: 1; display: grid; min-height: 600px; transition-property: grid-template-rows, grid-template-columns; transition-timing-function: ease; }
.tile { position: relative; overflow: hidden; border-radius: 6px; background: #111; transition-property: transform; transition-timing-function: ease; }
.tile-link { position: absolute; inset: 0; display: block; }
.tile-media { position: absolute; inset: calc((100% - var(--border-size)) / 2); border: var(--border-thickness) solid var(--line); overflow: hidden; }
.tile-media video { width: 100%; height: 100%; object-fit: cover; transform: scale(var(--media-size)); }
.tile-overlay { position: absolute; inset: 0; display: flex; flex-direction: column; align-items: center; justify-content: center; padding: 16px; text-align: center; background: rgba(0, 0, 0, 0.6); opacity: 0; transition: opacity 0.3s ease; }
.tile:hover .tile-overlay, .tile.hovered .tile-overlay { opacity: 1; }
.tile-overlay h3 { font-size: 18px; font-weight: 600; margin-bottom: 8px; }
.tile-overlay p { font-size: 14px; color: rgba(255, 255, 255, 0.8); }
.tile-badge { margin-top: 8px; padding: 2px 8px; font-size: 12px; background: rgba(0, 0, 0, 0.8); border: 1px solid rgba(255, 255, 255, 0.3); border-radius: 4px; }
.tile-controls { position: absolute; left: 0; right: 0; bottom: 0; display: grid; gap: 4px; padding: 8px; font-size: 11px; background: rgba(0, 0, 0, 0.8); }

/* Documentation viewer */
.docs-header { position: sticky; top: 0; z-index: 50; border-bottom: 1px solid var(--line); background: rgba(10, 10, 10, 0.95); backdrop-filter: blur(4px); padding: 12px 24px; }
.header-row { display: flex; justify-content: space-between; align-items: center; margin-bottom: 12px; }
.header-left { display: flex; align-items: center; gap: 12px; }
.header-right { color: var(--text-dim); font-size: 12px; font-weight: 500; }
.back-link { display: inline-flex; align-items: center; gap: 8px; color: var(--text-dim); font-size: 12px; }
.back-link:hover { color: var(--text); }
.divider { width: 1px; height: 16px; background: rgba(255, 255, 255, 0.2); }
.section-title { display: inline-flex; align-items: center; gap: 8px; }
.section-title h1 { font-size: 18px; font-weight: 300; font-style: italic; }
.search-row { display: flex; align-items: center; gap: 12px; }
.search-box, .filter-box { display: inline-flex; align-items: center; gap: 6px; color: var(--text-faint); }
.search-box { flex: 1; max-width: 28rem; position: relative; }
.search-box input, .filter-box select { width: 100%; padding: 6px 10px; font-size: 12px; color: var(--text); background: rgba(255, 255, 255, 0.05); border: 1px solid var(--line); border-radius: 4px; outline: none; }
.search-box input:focus, .filter-box select:focus { border-color: rgba(59, 130, 246, 0.5); }

.docs-body { display: grid; grid-template-columns: 1fr 5fr; gap: 24px; max-width: 80rem; margin: 0 auto; padding: 24px; }
.tab-nav { position: sticky; top: 128px; align-self: start; display: flex; flex-direction: column; gap: 4px; }
.nav-label { color: var(--text-faint); font-size: 12px; font-weight: 500; text-transform: uppercase; letter-spacing: 0.08em; padding: 0 8px; margin-bottom: 8px; }
.tab { display: flex; align-items: center; gap: 8px; padding: 6px 8px; border-radius: 4px; border: 1px solid transparent; color: var(--text-dim); font-size: 12px; text-transform: capitalize; }
.tab:hover { color: var(--text); background: rgba(255, 255, 255, 0.05); }
.tab.active { color: var(--accent); background: var(--accent-bg); border-color: rgba(59, 130, 246, 0.3); }

.tab-content { display: flex; flex-direction: column; gap: 24px; min-width: 0; }
.callout { display: flex; gap: 12px; padding: 16px; border-radius: 8px; border: 1px solid rgba(59, 130, 246, 0.2); background: linear-gradient(to right, rgba(59, 130, 246, 0.1), rgba(6, 182, 212, 0.1)); color: var(--accent); }
.callout h2 { color: var(--text); font-size: 18px; margin-bottom: 8px; }
.overview-text { color: rgba(255, 255, 255, 0.8); font-size: 12px; white-space: pre-line; }
.files-heading { display: flex; align-items: center; gap: 8px; font-size: 16px; font-weight: 600; }
.files-heading .icon { color: var(--accent); }
.files { border: 1px solid var(--line); border-radius: 8px; overflow: hidden; background: var(--panel); }
.files-header { display: flex; align-items: center; gap: 8px; padding: 8px 16px; font-size: 12px; color: rgba(255, 255, 255, 0.8); background: rgba(255, 255, 255, 0.05); border-bottom: 1px solid var(--line); }
.files-body { display: flex; flex-direction: column; gap: 8px; padding: 16px; }
.file-row { display: flex; align-items: flex-start; gap: 12px; font-size: 12px; color: var(--text-dim); }
.file-row code { flex-shrink: 0; font-family: var(--mono); color: var(--accent); background: rgba(59, 130, 246, 0.1); border: 1px solid rgba(59, 130, 246, 0.2); border-radius: 4px; padding: 1px 8px; }
.file-children { margin: 6px 0 0 24px; padding-left: 12px; border-left: 1px solid var(--line); display: flex; flex-direction: column; gap: 4px; }
.file-row.child code { color: var(--green); background: rgba(34, 197, 94, 0.1); border-color: rgba(34, 197, 94, 0.2); }

.tab-header { display: flex; align-items: center; gap: 12px; padding-bottom: 12px; border-bottom: 1px solid var(--line); color: var(--accent); }
.tab-header h2 { color: var(--text); font-size: 18px; text-transform: capitalize; }
.spacer { flex: 1; }
.updated { display: inline-flex; align-items: center; gap: 4px; font-size: 12px; color: rgba(255, 255, 255, 0.5); }
.tab-title { color: var(--text-dim); font-style: italic; }

.stack { display: flex; flex-direction: column; gap: 16px; }
.stack.depth-1, .stack.depth-2 { padding-left: 12px; border-left: 1px solid var(--line); }
.group-heading { display: flex; align-items: center; gap: 6px; margin-bottom: 8px; font-size: 14px; font-weight: 600; text-transform: capitalize; }
.group-heading .icon { color: var(--accent); }
.group-heading.depth-1 { font-size: 13px; }
.group-heading.depth-2, .group-heading.depth-3 { font-size: 12px; color: rgba(255, 255, 255, 0.9); }
.scalar { color: var(--text-dim); font-size: 12px; }

.code-block { border: 1px solid var(--line); border-radius: 8px; overflow: hidden; background: var(--panel); }
.code-header { display: flex; justify-content: space-between; align-items: center; padding: 6px 12px; background: rgba(255, 255, 255, 0.05); border-bottom: 1px solid var(--line); }
.code-label { display: inline-flex; align-items: center; gap: 6px; font-size: 12px; color: var(--text-dim); }
.copy-btn { display: inline-flex; align-items: center; gap: 4px; padding: 2px 8px; font-size: 12px; color: var(--text-dim); background: transparent; border: 1px solid var(--line); border-radius: 4px; }
.copy-btn:hover { color: var(--text); background: rgba(255, 255, 255, 0.1); }
.copy-btn .icon-copied { display: none; }
.copy-btn.copied { color: var(--green); }
.copy-btn.copied .icon-copied { display: inline; }
.copy-btn.copied .icon-copy { display: none; }
.code-block pre { margin: 0; padding: 12px 16px; overflow-x: auto; font-family: var(--mono); font-size: 12px; line-height: 1.6; color: #e6edf3; }

.not-found-main { max-width: 56rem; margin: 0 auto; padding: 32px; }
.not-found-main .back-link { margin-bottom: 32px; }
.not-found-main h1 { font-size: 24px; font-weight: 700; }

@media (max-width: 900px) {
  .landing-main, .docs-body { grid-template-columns: 1fr; }
  .tab-nav { position: static; flex-direction: row; flex-wrap: wrap; }
}
`

const hubJS = `(function () {
  "use strict";

  var cfgEl = document.getElementById("hub-config");
  var cfg = cfgEl ? JSON.parse(cfgEl.textContent) : {};
  var feedbackMs = cfg.feedbackMs || 2000;

  // ── Landing grid ──
  var grid = document.getElementById("tile-grid");
  var layout = cfg.layout || null;
  var hovered = null;

  function applyTracks() {
    if (!grid || !layout) return;
    grid.style.gridTemplateRows = hovered ? layout.rows.hovered[hovered.row] : layout.rows.none;
    grid.style.gridTemplateColumns = hovered ? layout.cols.hovered[hovered.col] : layout.cols.none;
    grid.style.gap = layout.gap + "px";
  }

  function applyLayout(next) {
    layout = next;
    applyTracks();
    var hs = document.getElementById("hover-size");
    if (hs) {
      hs.value = layout.hoverWeight;
      document.getElementById("hover-size-value").textContent = layout.hoverWeight;
    }
    var gs = document.getElementById("gap-size");
    if (gs) {
      gs.value = layout.gap;
      document.getElementById("gap-size-value").textContent = layout.gap;
    }
    layout.tiles.forEach(function (t) {
      var tile = grid.querySelector('[data-tile-id="' + t.id + '"]');
      if (!tile) return;
      var media = tile.querySelector(".tile-media");
      media.style.setProperty("--media-size", t.params.mediaSize);
      media.style.setProperty("--border-thickness", t.params.borderThickness + "px");
      media.style.setProperty("--border-size", t.params.borderSize + "%");
      tile.querySelectorAll("[data-param]").forEach(function (input) {
        input.value = t.params[input.dataset.param];
      });
    });
  }

  if (grid) {
    grid.querySelectorAll(".tile").forEach(function (tile) {
      tile.addEventListener("mouseenter", function () {
        tile.classList.add("hovered");
        hovered = { row: +tile.dataset.row, col: +tile.dataset.col };
        applyTracks();
      });
      tile.addEventListener("mouseleave", function () {
        tile.classList.remove("hovered");
        hovered = null;
        applyTracks();
      });
    });
  }

  // ── Dev controls ──
  function send(method, url, body) {
    return fetch(url, {
      method: method,
      headers: { "Content-Type": "application/json" },
      body: body === undefined ? undefined : JSON.stringify(body)
    });
  }

  if (cfg.dev && grid) {
    var showControls = false;
    var devBar = document.getElementById("dev-bar");
    var devControls = document.getElementById("dev-controls");
    var showUI = document.getElementById("show-ui");
    var toggleControls = document.getElementById("toggle-controls");

    function setControls(on) {
      showControls = on;
      devControls.hidden = !on;
      toggleControls.textContent = on ? "Hide Controls" : "Show Controls";
      grid.querySelectorAll(".tile-controls").forEach(function (el) { el.hidden = !on; });
    }

    toggleControls.addEventListener("click", function () { setControls(!showControls); });
    document.getElementById("toggle-ui").addEventListener("click", function () {
      setControls(false);
      devBar.hidden = true;
      showUI.hidden = false;
    });
    showUI.addEventListener("click", function () {
      devBar.hidden = false;
      showUI.hidden = true;
    });
    document.getElementById("update-codebase").addEventListener("click", function () {
      console.log("Updating codebase with current values:");
      console.log("Hover Size:", layout.hoverWeight);
      console.log("Gap Size:", layout.gap);
      console.log("Frames:", layout.tiles);
      send("POST", "/api/layout/log");
    });

    var hs = document.getElementById("hover-size");
    hs.addEventListener("input", function () { document.getElementById("hover-size-value").textContent = hs.value; });
    hs.addEventListener("change", function () { send("PATCH", "/api/layout", { hoverWeight: parseFloat(hs.value) }); });
    var gs = document.getElementById("gap-size");
    gs.addEventListener("input", function () { document.getElementById("gap-size-value").textContent = gs.value; });
    gs.addEventListener("change", function () { send("PATCH", "/api/layout", { gap: parseInt(gs.value, 10) }); });

    grid.querySelectorAll("[data-param]").forEach(function (input) {
      input.addEventListener("change", function () {
        var id = input.closest(".tile").dataset.tileId;
        var body = {};
        body[input.dataset.param] = parseFloat(input.value);
        send("PATCH", "/api/tiles/" + id, body);
      });
    });

    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(proto + "//" + location.host + "/ws/layout");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.layout) applyLayout(msg.layout);
    };
  }

  // ── Copy buttons ──
  var activeCopy = null;
  var copyTimer = null;

  function setCopied(btn, on) {
    btn.classList.toggle("copied", on);
    btn.querySelector(".copy-label").textContent = on ? "Copied!" : "Copy";
  }

  function writeClipboard(text) {
    if (navigator.clipboard && navigator.clipboard.writeText) {
      return navigator.clipboard.writeText(text);
    }
    return Promise.reject(new Error("clipboard unavailable"));
  }

  function report(id, ok, error) {
    if (!cfg.section) return;
    send("POST", "/api/copy-events", { section: cfg.section, id: id, ok: ok, error: error }).catch(function () {});
  }

  document.addEventListener("click", function (e) {
    var btn = e.target.closest(".copy-btn");
    if (!btn) return;
    var id = btn.dataset.copyId;
    var text = btn.closest(".code-block").querySelector("code").textContent;
    writeClipboard(text).then(function () {
      if (activeCopy && activeCopy !== btn) setCopied(activeCopy, false);
      clearTimeout(copyTimer);
      activeCopy = btn;
      setCopied(btn, true);
      copyTimer = setTimeout(function () {
        setCopied(btn, false);
        activeCopy = null;
      }, feedbackMs);
      report(id, true, "");
    }, function (err) {
      console.error("Failed to copy text: ", err);
      report(id, false, String(err));
    });
  });

  // ── Search and filter ──
  var filter = document.getElementById("filter-select");
  if (filter) {
    filter.addEventListener("change", function () { document.getElementById("search-form").submit(); });
  }
})();
`
