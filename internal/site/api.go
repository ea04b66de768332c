package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/metrics"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// Tile parameter bounds accepted from the dev controls.
const (
	maxMediaSize       = 3.0
	maxBorderThickness = 50
	maxBorderSize      = 100
)

type tabJSON struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Title string `json:"title,omitempty"`
	Body  any    `json:"body,omitempty"`
}

type sectionSummary struct {
	Key   string    `json:"key"`
	Title string    `json:"title"`
	Icon  string    `json:"icon"`
	Tabs  []tabJSON `json:"tabs"`
}

type fileJSON struct {
	Path        string     `json:"path"`
	Description string     `json:"description"`
	Children    []fileJSON `json:"children,omitempty"`
}

type sectionDetail struct {
	sectionSummary
	Overview      string     `json:"overview"`
	FileStructure []fileJSON `json:"fileStructure,omitempty"`
}

func (h *Hub) handleListSections(w http.ResponseWriter, r *http.Request) {
	out := []sectionSummary{}
	for _, key := range h.reg.Keys() {
		out = append(out, summarize(viewer.New(h.reg, key)))
	}
	writeJSON(w, http.StatusOK, out)
}

func summarize(v *viewer.Viewer) sectionSummary {
	sec := v.Section()
	s := sectionSummary{Key: sec.Key, Title: sec.Title, Icon: sec.Icon}
	for _, t := range v.Tabs() {
		s.Tabs = append(s.Tabs, tabJSON{Key: t.Key, Label: t.Label, Icon: string(t.Icon)})
	}
	return s
}

func (h *Hub) handleGetSection(w http.ResponseWriter, r *http.Request) {
	v := viewer.New(h.reg, chi.URLParam(r, "section"))
	if !v.Found() {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(viewer.Markdown(v.Section())))
		return
	}

	d := sectionDetail{sectionSummary: summarize(v)}
	ov := v.Overview()
	d.Overview = ov.Text
	for _, f := range ov.Files {
		fj := fileJSON{Path: f.Path, Description: f.Description}
		for _, c := range f.Children {
			fj.Children = append(fj.Children, fileJSON{Path: c.Path, Description: c.Description})
		}
		d.FileStructure = append(d.FileStructure, fj)
	}
	for i, t := range d.Tabs {
		if t.Key == content.KeyOverview {
			continue
		}
		v.SelectTab(t.Key)
		d.Tabs[i].Title = v.TabTitle()
		d.Tabs[i].Body = blockJSON(v.Body())
	}
	writeJSON(w, http.StatusOK, d)
}

// blockJSON converts a rendered block tree to plain JSON values.
func blockJSON(b viewer.Block) any {
	switch v := b.(type) {
	case *viewer.CodeBlock:
		return map[string]any{"type": "code", "id": v.ID, "label": v.Label, "text": v.Text}
	case *viewer.TextBlock:
		return map[string]any{"type": "text", "text": v.Text}
	case *viewer.Stack:
		groups := make([]map[string]any, 0, len(v.Groups))
		for _, g := range v.Groups {
			groups = append(groups, map[string]any{
				"key":     g.Key,
				"heading": g.Heading,
				"icon":    string(g.Icon),
				"body":    blockJSON(g.Body),
			})
		}
		return map[string]any{"type": "stack", "depth": v.Depth, "groups": groups}
	}
	return nil
}

func (h *Hub) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

type layoutPatch struct {
	HoverWeight *float64 `json:"hoverWeight"`
	Gap         *int     `json:"gap"`
}

func (h *Hub) handlePatchLayout(w http.ResponseWriter, r *http.Request) {
	var p layoutPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mu.Lock()
	if p.HoverWeight != nil {
		h.layout.SetHoverWeight(*p.HoverWeight)
		h.opts.Metrics.RecordTileUpdate("hoverWeight")
	}
	if p.Gap != nil {
		h.layout.SetGap(*p.Gap)
		h.opts.Metrics.RecordTileUpdate("gap")
	}
	snap := snapshotLayout(h.layout)
	h.mu.Unlock()

	h.live.broadcast(snap)
	writeJSON(w, http.StatusOK, snap)
}

type tilePatch struct {
	MediaSize       *float64 `json:"mediaSize"`
	BorderThickness *int     `json:"borderThickness"`
	BorderSize      *int     `json:"borderSize"`
}

func (p tilePatch) validate() error {
	if p.MediaSize != nil && (*p.MediaSize <= 0 || *p.MediaSize > maxMediaSize) {
		return fmt.Errorf("mediaSize must be in (0, %g]", maxMediaSize)
	}
	if p.BorderThickness != nil && (*p.BorderThickness < 0 || *p.BorderThickness > maxBorderThickness) {
		return fmt.Errorf("borderThickness must be in [0, %d]", maxBorderThickness)
	}
	if p.BorderSize != nil && (*p.BorderSize < 0 || *p.BorderSize > maxBorderSize) {
		return fmt.Errorf("borderSize must be in [0, %d]", maxBorderSize)
	}
	return nil
}

// apply sets each field present in p on tile id. Nothing changes when the tile
// does not exist.
func (p tilePatch) apply(l *grid.Layout, id int, m *metrics.HubMetrics) error {
	if _, ok := l.Tile(id); !ok {
		return fmt.Errorf("patch tile %d: %w", id, grid.ErrUnknownTile)
	}
	if p.MediaSize != nil {
		if err := l.SetMediaSize(id, *p.MediaSize); err != nil {
			return err
		}
		m.RecordTileUpdate("mediaSize")
	}
	if p.BorderThickness != nil {
		if err := l.SetBorderThickness(id, *p.BorderThickness); err != nil {
			return err
		}
		m.RecordTileUpdate("borderThickness")
	}
	if p.BorderSize != nil {
		if err := l.SetBorderSize(id, *p.BorderSize); err != nil {
			return err
		}
		m.RecordTileUpdate("borderSize")
	}
	return nil
}

func (h *Hub) handlePatchTile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tile id")
		return
	}
	var p tilePatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := p.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	err = p.apply(h.layout, id, h.opts.Metrics)
	tile, _ := h.layout.Tile(id)
	snap := snapshotLayout(h.layout)
	h.mu.Unlock()

	if errors.Is(err, grid.ErrUnknownTile) {
		writeError(w, http.StatusNotFound, "tile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.live.broadcast(snap)
	writeJSON(w, http.StatusOK, tile)
}

// handleLogLayout writes the current grid values to the log so they can be
// copied into the tile defaults.
func (h *Hub) handleLogLayout(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	tiles := make([]any, 0, len(snap.Tiles))
	for _, t := range snap.Tiles {
		tiles = append(tiles, map[string]any{"id": t.ID, "section": t.Section, "params": t.Params})
	}
	h.log.Info("updating codebase with current values",
		"hover_weight", snap.HoverWeight,
		"gap", snap.Gap,
		"tiles", tiles,
	)
	w.WriteHeader(http.StatusNoContent)
}

// copyEvent reports the outcome of a copy button press in the browser.
type copyEvent struct {
	Section string `json:"section"`
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

func (h *Hub) handleCopyEvent(w http.ResponseWriter, r *http.Request) {
	var ev copyEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := h.reg.Section(ev.Section); !ok {
		writeError(w, http.StatusBadRequest, "unknown section")
		return
	}

	if ev.OK {
		h.opts.Metrics.RecordCopy(ev.Section, metrics.CopySuccess)
	} else {
		h.opts.Metrics.RecordCopy(ev.Section, metrics.CopyFailure)
		h.log.Error("failed to copy text", "section", ev.Section, "block", ev.ID, "error", ev.Error)
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
