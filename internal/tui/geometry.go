package tui

import (
	"math"
	"sort"

	"github.com/gitmesh/docs-hub/internal/grid"
)

// Screen rows outside the tile grid and the docs body.
const (
	gridHeaderLines = 3
	docsHeaderLines = 4
	footerLines     = 1
)

// gridGeometry is the tile grid laid out in terminal cells.
type gridGeometry struct {
	top        int
	hgap, vgap int
	cols, rows [grid.Tracks]int
}

// geometry sizes the grid from the animated track weights. A terminal cell
// is about twice as tall as it is wide, so vertical gaps use half as many
// cells as horizontal ones.
func (m *Model) geometry() gridGeometry {
	g := gridGeometry{
		top:  gridHeaderLines,
		hgap: m.layout.Gap() / 4,
		vgap: m.layout.Gap() / 8,
	}
	w := m.width - g.hgap*(grid.Tracks-1)
	h := m.height - gridHeaderLines - footerLines - g.vgap*(grid.Tracks-1)
	g.cols = distribute(w, m.layout.AnimatedColumns())
	g.rows = distribute(h, m.layout.AnimatedRows())
	return g
}

// cellAt returns the macro-cell under screen position (x, y). Gaps and the
// header belong to no cell.
func (g gridGeometry) cellAt(x, y int) (grid.Cell, bool) {
	row, ok := trackAt(y-g.top, g.rows, g.vgap)
	if !ok {
		return grid.Cell{}, false
	}
	col, ok := trackAt(x, g.cols, g.hgap)
	if !ok {
		return grid.Cell{}, false
	}
	return grid.Cell{Row: row, Col: col}, true
}

func trackAt(pos int, sizes [grid.Tracks]int, gap int) (int, bool) {
	if pos < 0 {
		return 0, false
	}
	for i, s := range sizes {
		if pos < s {
			return i, true
		}
		pos -= s
		if pos < gap {
			return 0, false
		}
		pos -= gap
	}
	return 0, false
}

// distribute splits total cells across tracks in proportion to weights using
// the largest remainder method, so the sizes always add up to total.
func distribute(total int, weights [grid.Tracks]float64) [grid.Tracks]int {
	var out [grid.Tracks]int
	if total <= 0 {
		return out
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return out
	}

	type share struct {
		i    int
		frac float64
	}
	shares := make([]share, grid.Tracks)
	used := 0
	for i, w := range weights {
		exact := float64(total) * w / sum
		out[i] = int(math.Floor(exact))
		used += out[i]
		shares[i] = share{i, exact - float64(out[i])}
	}
	sort.SliceStable(shares, func(a, b int) bool { return shares[a].frac > shares[b].frac })
	for k := 0; used < total; k++ {
		out[shares[k%grid.Tracks].i]++
		used++
	}
	return out
}
