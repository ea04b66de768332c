package site

import (
	"github.com/gitmesh/docs-hub/internal/grid"
)

// trackTemplates holds the grid track list for each hover state of one axis,
// so the browser can switch between them without a round trip.
type trackTemplates struct {
	None    string              `json:"none"`
	Hovered [grid.Tracks]string `json:"hovered"`
}

// tileView is a tile as the landing page and the layout API present it.
type tileView struct {
	grid.Tile
	Cell   grid.Cell `json:"cell"`
	Origin string    `json:"transformOrigin"`
	Href   string    `json:"href"`
}

// layoutSnapshot is the full landing grid state sent to browsers.
type layoutSnapshot struct {
	HoverWeight  float64        `json:"hoverWeight"`
	Gap          int            `json:"gap"`
	TransitionMS int64          `json:"transitionMs"`
	Rows         trackTemplates `json:"rows"`
	Cols         trackTemplates `json:"cols"`
	Tiles        []tileView     `json:"tiles"`
}

func templatesFor(weight float64) trackTemplates {
	t := trackTemplates{None: grid.Template(grid.TrackSizes(-1, weight))}
	for i := range t.Hovered {
		t.Hovered[i] = grid.Template(grid.TrackSizes(i, weight))
	}
	return t
}

// snapshotLayout captures l. The caller must hold the hub's layout lock.
func snapshotLayout(l *grid.Layout) layoutSnapshot {
	tracks := templatesFor(l.HoverWeight())
	s := layoutSnapshot{
		HoverWeight:  l.HoverWeight(),
		Gap:          l.Gap(),
		TransitionMS: l.Transition().Milliseconds(),
		Rows:         tracks,
		Cols:         tracks,
	}
	for _, t := range l.Tiles() {
		s.Tiles = append(s.Tiles, tileView{
			Tile:   t,
			Cell:   grid.MacroCell(t),
			Origin: grid.TransformOrigin(t),
			Href:   tileHref(t.ID),
		})
	}
	return s
}
