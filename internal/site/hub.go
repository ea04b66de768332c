// Package site serves the docs hub over HTTP: the landing grid, the
// documentation viewer, a JSON API over both, live dev controls and a static
// export of every section.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gitmesh/docs-hub/internal/clipboard"
	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/metrics"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// Options configures a Hub.
type Options struct {
	// Dev enables the layout controls and the endpoints that mutate the
	// shared grid.
	Dev bool
	// CleanInterface hides the dev control bar until it is toggled on.
	CleanInterface bool
	// Feedback is how long a copy button shows "Copied!".
	Feedback time.Duration
	// MediaDir, when set, is served under /media.
	MediaDir string
	Logger   *slog.Logger
	Metrics  *metrics.HubMetrics
}

// Hub is the web front-end. The landing grid is shared by every visitor, so
// dev-mode changes made in one browser show up in all of them.
type Hub struct {
	reg   *content.Registry
	opts  Options
	log   *slog.Logger
	pages *template.Template
	live  *liveHub

	mu     sync.Mutex
	layout *grid.Layout
}

// NewHub builds a hub over the sections of reg and the landing tiles.
func NewHub(reg *content.Registry, tiles []grid.Tile, opts Options, gridOpts ...grid.Option) (*Hub, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Feedback <= 0 {
		opts.Feedback = clipboard.DefaultFeedback
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	h := &Hub{
		reg:   reg,
		opts:  opts,
		log:   opts.Logger,
		pages: pages,
	}
	h.live = newLiveHub(h.log, opts.Metrics)

	gridOpts = append(gridOpts, grid.WithActivate(func(section string) {
		h.opts.Metrics.RecordTileActivation(section)
		h.log.Debug("tile activated", "section", section)
	}))
	h.layout = grid.NewLayout(tiles, gridOpts...)
	return h, nil
}

// RegisterRoutes mounts every hub route onto r.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleLanding)
	r.Get("/tiles/{id}", h.handleTile)
	r.Get("/docs/{section}", h.handleDocs)
	r.Get("/static/hub.css", serveAsset("text/css; charset=utf-8", hubCSS))
	r.Get("/static/hub.js", serveAsset("application/javascript; charset=utf-8", hubJS))
	if h.opts.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.opts.MediaDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/sections", h.handleListSections)
		r.Get("/sections/{section}", h.handleGetSection)
		r.Get("/layout", h.handleGetLayout)
		r.Post("/copy-events", h.handleCopyEvent)
		if h.opts.Dev {
			r.Patch("/layout", h.handlePatchLayout)
			r.Patch("/tiles/{id}", h.handlePatchTile)
			r.Post("/layout/log", h.handleLogLayout)
		}
	})
	if h.opts.Dev {
		r.Get("/ws/layout", h.live.serve(h.snapshot))
	}
}

// Close disconnects every live client.
func (h *Hub) Close() {
	h.live.closeAll()
}

func (h *Hub) snapshot() layoutSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return snapshotLayout(h.layout)
}

func tileHref(id int) string {
	return "/tiles/" + strconv.Itoa(id)
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write([]byte(body))
	}
}

type landingData struct {
	Name      string
	Tagline   string
	RepoURL   string
	RepoStars string
	Dev       bool
	Clean     bool
	Layout    layoutSnapshot
	Config    clientConfig
}

// clientConfig is handed to hub.js as JSON.
type clientConfig struct {
	Dev        bool            `json:"dev"`
	FeedbackMS int64           `json:"feedbackMs"`
	Layout     *layoutSnapshot `json:"layout,omitempty"`
	Section    string          `json:"section,omitempty"`
}

func (h *Hub) handleLanding(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	h.render(w, http.StatusOK, "landing", landingData{
		Name:      content.HubName,
		Tagline:   content.Tagline,
		RepoURL:   content.RepoURL,
		RepoStars: content.RepoStars,
		Dev:       h.opts.Dev,
		Clean:     h.opts.CleanInterface,
		Layout:    snap,
		Config:    clientConfig{Dev: h.opts.Dev, FeedbackMS: h.opts.Feedback.Milliseconds(), Layout: &snap},
	})
}

func (h *Hub) handleTile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.mu.Lock()
	tile, ok := h.layout.Tile(id)
	if ok {
		err = h.layout.Activate(id)
	}
	h.mu.Unlock()
	if !ok || err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/docs/"+tile.Section, http.StatusSeeOther)
}

type docsData struct {
	viewer.Page
	HubTitle string
	Filters  []viewer.FilterOption
	Config   clientConfig
	TabQuery func(tab string) string
}

func (h *Hub) handleDocs(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "section")
	v := viewer.New(h.reg, key)
	q := r.URL.Query()
	if tab := q.Get("tab"); tab != "" {
		v.SelectTab(tab)
	}
	v.SetSearch(q.Get("q"))
	v.SetFilter(viewer.Filter(q.Get("filter")))
	h.opts.Metrics.RecordSectionView(sectionLabel(v), v.Found())

	page := v.Page()
	if !page.Found {
		h.render(w, http.StatusNotFound, "notfound", page)
		return
	}

	h.render(w, http.StatusOK, "docs", docsData{
		Page:     page,
		HubTitle: content.HubTitle,
		Filters:  viewer.Filters,
		Config:   clientConfig{FeedbackMS: h.opts.Feedback.Milliseconds(), Section: key},
		TabQuery: func(tab string) string {
			vals := url.Values{"tab": {tab}}
			if page.Search != "" {
				vals.Set("q", page.Search)
			}
			if page.Filter != viewer.FilterAll {
				vals.Set("filter", string(page.Filter))
			}
			return "?" + vals.Encode()
		},
	})
}

// sectionLabel keeps unknown section keys out of metric labels.
func sectionLabel(v *viewer.Viewer) string {
	if !v.Found() {
		return "unknown"
	}
	return v.Key()
}

// render executes a page template into a buffer first so a template error
// still produces a clean 500.
func (h *Hub) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.opts.Metrics.RecordTemplateError(name)
		h.log.Error("rendering page", "template", name, "error", err)
		http.Error(w, fmt.Sprintf("rendering %s: internal error", name), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
