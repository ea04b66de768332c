package grid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Hover weight and gap bounds, matching the dev-control sliders.
const (
	DefaultHoverWeight = 6.0
	MinHoverWeight     = 4.0
	MaxHoverWeight     = 8.0

	DefaultGap = 4
	MaxGap     = 20
)

// ErrUnknownTile is returned when a tile id is not part of the layout.
var ErrUnknownTile = errors.New("unknown tile")

// Option configures a Layout.
type Option func(*Layout)

// WithActivate sets the callback invoked with a tile's section key when the
// tile is activated.
func WithActivate(fn func(section string)) Option {
	return func(l *Layout) { l.onActivate = fn }
}

// WithHoverWeight sets the share given to the hovered row and column.
// Values outside [MinHoverWeight, MaxHoverWeight] are clamped.
func WithHoverWeight(h float64) Option {
	return func(l *Layout) { l.weight = clampWeight(h) }
}

// WithGap sets the gap between tiles in pixels, clamped to [0, MaxGap].
func WithGap(px int) Option {
	return func(l *Layout) { l.gap = clampGap(px) }
}

// WithTransition sets the track resize duration.
func WithTransition(d time.Duration) Option {
	return func(l *Layout) {
		if d > 0 {
			l.transition = d
		}
	}
}

// WithClock replaces time.Now for the track animation.
func WithClock(now func() time.Time) Option {
	return func(l *Layout) { l.now = now }
}

// Layout holds the tiles and the hover state of the landing grid. A Layout is
// not safe for concurrent use.
type Layout struct {
	tiles      []Tile
	byID       map[int]int
	hover      *Cell
	weight     float64
	gap        int
	transition time.Duration
	onActivate func(string)
	now        func() time.Time
	rows, cols Tween
}

// NewLayout returns a layout over a copy of tiles with nothing hovered.
func NewLayout(tiles []Tile, opts ...Option) *Layout {
	l := &Layout{
		tiles:      make([]Tile, len(tiles)),
		byID:       make(map[int]int, len(tiles)),
		weight:     DefaultHoverWeight,
		gap:        DefaultGap,
		transition: DefaultTransition,
		now:        time.Now,
	}
	copy(l.tiles, tiles)
	for i, t := range l.tiles {
		l.byID[t.ID] = i
	}
	for _, opt := range opts {
		opt(l)
	}
	l.rows = NewTween(l.RowTracks())
	l.cols = NewTween(l.ColTracks())
	return l
}

// Tiles returns a copy of the tiles in display order.
func (l *Layout) Tiles() []Tile {
	out := make([]Tile, len(l.tiles))
	copy(out, l.tiles)
	return out
}

// Tile returns the tile with the given id.
func (l *Layout) Tile(id int) (Tile, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Tile{}, false
	}
	return l.tiles[i], true
}

// TileAt returns the tile occupying macro-cell c.
func (l *Layout) TileAt(c Cell) (Tile, bool) {
	for _, t := range l.tiles {
		if MacroCell(t) == c {
			return t, true
		}
	}
	return Tile{}, false
}

// Hover returns the hovered macro-cell, if any.
func (l *Layout) Hover() (Cell, bool) {
	if l.hover == nil {
		return Cell{}, false
	}
	return *l.hover, true
}

// Hovered reports whether tile t sits in the hovered macro-cell.
func (l *Layout) Hovered(t Tile) bool {
	return l.hover != nil && *l.hover == MacroCell(t)
}

// Enter records the pointer entering tile id.
func (l *Layout) Enter(id int) error {
	t, ok := l.Tile(id)
	if !ok {
		return fmt.Errorf("enter tile %d: %w", id, ErrUnknownTile)
	}
	c := MacroCell(t)
	l.hover = &c
	l.retarget()
	return nil
}

// Leave clears the hover state.
func (l *Layout) Leave() {
	if l.hover == nil {
		return
	}
	l.hover = nil
	l.retarget()
}

// Activate notifies the activate callback with tile id's section key.
func (l *Layout) Activate(id int) error {
	t, ok := l.Tile(id)
	if !ok {
		return fmt.Errorf("activate tile %d: %w", id, ErrUnknownTile)
	}
	if l.onActivate != nil {
		l.onActivate(t.Section)
	}
	return nil
}

// HoverWeight returns the share given to the hovered track.
func (l *Layout) HoverWeight() float64 { return l.weight }

// SetHoverWeight changes the hovered track share, clamped to the allowed range.
func (l *Layout) SetHoverWeight(h float64) {
	l.weight = clampWeight(h)
	l.retarget()
}

// Gap returns the gap between tiles in pixels.
func (l *Layout) Gap() int { return l.gap }

// SetGap changes the gap between tiles, clamped to [0, MaxGap].
func (l *Layout) SetGap(px int) { l.gap = clampGap(px) }

// Transition returns the track resize duration.
func (l *Layout) Transition() time.Duration { return l.transition }

// RowTracks returns the settled row weights for the current hover state.
func (l *Layout) RowTracks() [Tracks]float64 {
	if l.hover == nil {
		return TrackSizes(-1, l.weight)
	}
	return TrackSizes(l.hover.Row, l.weight)
}

// ColTracks returns the settled column weights for the current hover state.
func (l *Layout) ColTracks() [Tracks]float64 {
	if l.hover == nil {
		return TrackSizes(-1, l.weight)
	}
	return TrackSizes(l.hover.Col, l.weight)
}

// AnimatedRows returns the row weights at the current point of the resize
// transition.
func (l *Layout) AnimatedRows() [Tracks]float64 { return l.rows.At(l.now()) }

// AnimatedColumns returns the column weights at the current point of the
// resize transition.
func (l *Layout) AnimatedColumns() [Tracks]float64 { return l.cols.At(l.now()) }

// Animating reports whether a track resize is still in progress.
func (l *Layout) Animating() bool {
	now := l.now()
	return !l.rows.Done(now) || !l.cols.Done(now)
}

func (l *Layout) retarget() {
	now := l.now()
	l.rows.Retarget(l.RowTracks(), now, l.transition)
	l.cols.Retarget(l.ColTracks(), now, l.transition)
}

// SetMediaSize sets tile id's media scale factor.
func (l *Layout) SetMediaSize(id int, v float64) error {
	return l.update(id, func(p *Params) { p.MediaSize = v })
}

// SetBorderThickness sets tile id's frame border thickness.
func (l *Layout) SetBorderThickness(id int, v int) error {
	return l.update(id, func(p *Params) { p.BorderThickness = v })
}

// SetBorderSize sets tile id's frame border size.
func (l *Layout) SetBorderSize(id int, v int) error {
	return l.update(id, func(p *Params) { p.BorderSize = v })
}

func (l *Layout) update(id int, fn func(*Params)) error {
	i, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("update tile %d: %w", id, ErrUnknownTile)
	}
	fn(&l.tiles[i].Params)
	return nil
}

// TrackSizes returns the three track weights when track hovered has the
// pointer. Any hovered value outside [0, Tracks) means nothing is hovered and
// every track gets an equal share. The weights always sum to GridSize.
func TrackSizes(hovered int, weight float64) [Tracks]float64 {
	if hovered < 0 || hovered >= Tracks {
		return [Tracks]float64{CellSpan, CellSpan, CellSpan}
	}
	weight = clampWeight(weight)
	rest := (GridSize - weight) / 2
	out := [Tracks]float64{rest, rest, rest}
	out[hovered] = weight
	return out
}

// Template formats track weights as a CSS grid track list, e.g. "6fr 3fr 3fr".
func Template(tracks [Tracks]float64) string {
	parts := make([]string, len(tracks))
	for i, v := range tracks {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64) + "fr"
	}
	return strings.Join(parts, " ")
}

func clampWeight(h float64) float64 {
	switch {
	case math.IsNaN(h):
		return DefaultHoverWeight
	case h < MinHoverWeight:
		return MinHoverWeight
	case h > MaxHoverWeight:
		return MaxHoverWeight
	}
	return h
}

func clampGap(px int) int {
	switch {
	case px < 0:
		return 0
	case px > MaxGap:
		return MaxGap
	}
	return px
}
