// Package grid models the landing page: nine tiles on a 12x12 unit grid,
// grouped into a 3x3 arrangement of macro-cells whose row and column tracks
// grow and shrink as the pointer moves between them.
package grid

import "fmt"

const (
	// GridSize is the side length of the unit grid.
	GridSize = 12
	// CellSpan is the side length, in grid units, of one macro-cell.
	CellSpan = 4
	// Tracks is the number of rows (and columns) of macro-cells.
	Tracks = GridSize / CellSpan
)

// Rect is a tile position in grid units.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Cell identifies one macro-cell.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Media references the video and frame artwork shown inside a tile.
type Media struct {
	Video          string `json:"video"`
	Corner         string `json:"corner,omitempty"`
	EdgeHorizontal string `json:"edgeHorizontal,omitempty"`
	EdgeVertical   string `json:"edgeVertical,omitempty"`
}

// Params are the per-tile visual parameters adjustable from the dev controls.
type Params struct {
	MediaSize       float64 `json:"mediaSize"`
	BorderThickness int     `json:"borderThickness"`
	BorderSize      int     `json:"borderSize"`
}

// DefaultParams are the visual parameters every tile starts with.
var DefaultParams = Params{MediaSize: 1, BorderThickness: 0, BorderSize: 80}

// Tile is one entry of the landing grid.
type Tile struct {
	ID          int    `json:"id"`
	Media       Media  `json:"media"`
	Pos         Rect   `json:"pos"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Section     string `json:"section"`
	Params      Params `json:"params"`
}

// MacroCell returns the macro-cell a tile occupies.
func MacroCell(t Tile) Cell {
	return Cell{Row: t.Pos.Y / CellSpan, Col: t.Pos.X / CellSpan}
}

// TransformOrigin anchors a tile's scale effect to its side of the grid, as a
// CSS transform-origin value such as "top left" or "center right".
func TransformOrigin(t Tile) string {
	return originWord(t.Pos.Y, "top", "bottom") + " " + originWord(t.Pos.X, "left", "right")
}

func originWord(v int, low, high string) string {
	switch v {
	case 0:
		return low
	case CellSpan:
		return "center"
	default:
		return high
	}
}

const lumaCDN = "https://static.cdn-luma.com/files/bcf576df9c38b05f/"

// DefaultTiles returns the nine landing tiles in display order.
func DefaultTiles() []Tile {
	specs := []struct {
		title, description, section string
	}{
		{"Getting Started", "Installation, setup, and first steps with GitMesh", "guide"},
		{"Core Concepts", "Understanding mesh networks and decentralized version control", "concept"},
		{"API Reference", "Complete API documentation and command reference", "reference"},
		{"Tutorials", "Step-by-step tutorials for common workflows", "tutorial"},
		{"Architecture", "System architecture and technical deep-dives", "architecture"},
		{"Configuration", "Configuration files and environment setup", "config"},
		{"Examples", "Real-world examples and use cases", "example"},
		{"Contributing", "How to contribute to the GitMesh project", "community"},
		{"Troubleshooting", "Common issues and debugging guides", "support"},
	}

	tiles := make([]Tile, len(specs))
	for i, s := range specs {
		tiles[i] = Tile{
			ID:          i + 1,
			Media:       Media{Video: fmt.Sprintf("/videos/opensource_%d.mp4", i+1)},
			Pos:         Rect{X: (i % Tracks) * CellSpan, Y: (i / Tracks) * CellSpan, W: CellSpan, H: CellSpan},
			Title:       s.title,
			Description: s.description,
			Section:     s.section,
			Params:      DefaultParams,
		}
	}
	tiles[0].Media.Corner = lumaCDN + "1_corner_update.png"
	tiles[0].Media.EdgeHorizontal = lumaCDN + "1_vert_update.png"
	tiles[0].Media.EdgeVertical = lumaCDN + "1_hori_update.png"
	return tiles
}
