package grid

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTilesCoverGrid(t *testing.T) {
	tiles := DefaultTiles()
	require.Len(t, tiles, 9)

	seen := map[Cell]int{}
	for _, tile := range tiles {
		c := MacroCell(tile)
		assert.GreaterOrEqual(t, c.Row, 0)
		assert.Less(t, c.Row, Tracks)
		assert.GreaterOrEqual(t, c.Col, 0)
		assert.Less(t, c.Col, Tracks)
		if prev, dup := seen[c]; dup {
			t.Errorf("tiles %d and %d share macro-cell %s", prev, tile.ID, c)
		}
		seen[c] = tile.ID
		assert.Equal(t, CellSpan, tile.Pos.W)
		assert.Equal(t, CellSpan, tile.Pos.H)
		assert.Equal(t, DefaultParams, tile.Params)
	}
	assert.Len(t, seen, 9)

	assert.Equal(t, "guide", tiles[0].Section)
	assert.Equal(t, "community", tiles[7].Section)
	assert.Equal(t, "support", tiles[8].Section)
	assert.Equal(t, Rect{X: 4, Y: 8, W: 4, H: 4}, tiles[7].Pos)
	assert.Equal(t, "/videos/opensource_5.mp4", tiles[4].Media.Video)
	assert.NotEmpty(t, tiles[0].Media.Corner)
	assert.Empty(t, tiles[1].Media.Corner)
}

func TestTrackSizesSumToGrid(t *testing.T) {
	for h := MinHoverWeight; h <= MaxHoverWeight+1e-9; h += 0.1 {
		for hovered := 0; hovered < Tracks; hovered++ {
			tracks := TrackSizes(hovered, h)
			sum := tracks[0] + tracks[1] + tracks[2]
			assert.InDelta(t, GridSize, sum, 1e-9, "H=%v hovered=%d", h, hovered)
			assert.InDelta(t, h, tracks[hovered], 1e-9)
		}
	}
	assert.Equal(t, [Tracks]float64{4, 4, 4}, TrackSizes(-1, 6))
}

func TestTrackSizesClampWeight(t *testing.T) {
	assert.Equal(t, [Tracks]float64{8, 2, 2}, TrackSizes(0, 11))
	assert.Equal(t, [Tracks]float64{4, 4, 4}, TrackSizes(2, 1))
}

func TestTemplates(t *testing.T) {
	l := NewLayout(DefaultTiles())
	assert.Equal(t, "4fr 4fr 4fr", Template(l.RowTracks()))
	assert.Equal(t, "4fr 4fr 4fr", Template(l.ColTracks()))

	require.NoError(t, l.Enter(6)) // x=8, y=4
	assert.Equal(t, "3fr 6fr 3fr", Template(l.RowTracks()))
	assert.Equal(t, "3fr 3fr 6fr", Template(l.ColTracks()))

	l.SetHoverWeight(6.5)
	assert.Equal(t, "2.75fr 6.5fr 2.75fr", Template(l.RowTracks()))

	l.Leave()
	assert.Equal(t, "4fr 4fr 4fr", Template(l.RowTracks()))
	_, hovering := l.Hover()
	assert.False(t, hovering)
}

func TestEnterUnknownTile(t *testing.T) {
	l := NewLayout(DefaultTiles())
	err := l.Enter(42)
	assert.True(t, errors.Is(err, ErrUnknownTile))
	_, hovering := l.Hover()
	assert.False(t, hovering)
}

func TestTransformOrigin(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "top left"},
		{4, 0, "top center"},
		{8, 0, "top right"},
		{0, 4, "center left"},
		{4, 4, "center center"},
		{8, 8, "bottom right"},
	}
	for _, tt := range tests {
		got := TransformOrigin(Tile{Pos: Rect{X: tt.x, Y: tt.y}})
		assert.Equal(t, tt.want, got)
	}
}

func TestActivateNotifiesSection(t *testing.T) {
	var got []string
	l := NewLayout(DefaultTiles(), WithActivate(func(s string) { got = append(got, s) }))

	require.NoError(t, l.Activate(2))
	require.NoError(t, l.Activate(8))
	assert.Equal(t, []string{"concept", "community"}, got)

	assert.ErrorIs(t, l.Activate(0), ErrUnknownTile)
	assert.Len(t, got, 2)
}

func TestParamSetters(t *testing.T) {
	tiles := DefaultTiles()
	l := NewLayout(tiles)

	require.NoError(t, l.SetMediaSize(3, 1.5))
	require.NoError(t, l.SetBorderThickness(3, 12))
	require.NoError(t, l.SetBorderSize(3, 60))

	tile, ok := l.Tile(3)
	require.True(t, ok)
	assert.Equal(t, Params{MediaSize: 1.5, BorderThickness: 12, BorderSize: 60}, tile.Params)

	other, _ := l.Tile(4)
	assert.Equal(t, DefaultParams, other.Params)
	assert.Equal(t, DefaultParams, tiles[2].Params, "layout must not alias caller tiles")

	assert.ErrorIs(t, l.SetBorderSize(99, 1), ErrUnknownTile)
}

func TestOptionsClamp(t *testing.T) {
	l := NewLayout(DefaultTiles(), WithHoverWeight(2), WithGap(50), WithTransition(-time.Second))
	assert.Equal(t, MinHoverWeight, l.HoverWeight())
	assert.Equal(t, MaxGap, l.Gap())
	assert.Equal(t, DefaultTransition, l.Transition())

	l.SetGap(-3)
	assert.Equal(t, 0, l.Gap())
}

func TestAnimatedTracks(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLayout(DefaultTiles(), WithClock(func() time.Time { return now }))
	assert.False(t, l.Animating())

	require.NoError(t, l.Enter(1))
	assert.True(t, l.Animating())
	assert.Equal(t, [Tracks]float64{4, 4, 4}, l.AnimatedRows())

	now = now.Add(200 * time.Millisecond)
	mid := l.AnimatedRows()
	assert.Greater(t, mid[0], 4.0)
	assert.Less(t, mid[0], 6.0)
	assert.InDelta(t, GridSize, mid[0]+mid[1]+mid[2], 1e-9)

	now = now.Add(200 * time.Millisecond)
	assert.False(t, l.Animating())
	assert.Equal(t, [Tracks]float64{6, 3, 3}, l.AnimatedRows())
	assert.Equal(t, [Tracks]float64{6, 3, 3}, l.AnimatedColumns())
}

func TestRetargetMidTransition(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewLayout(DefaultTiles(), WithClock(func() time.Time { return now }))

	require.NoError(t, l.Enter(1))
	now = now.Add(100 * time.Millisecond)
	before := l.AnimatedColumns()

	require.NoError(t, l.Enter(3))
	assert.Equal(t, before, l.AnimatedColumns(), "retarget continues from the current position")

	now = now.Add(DefaultTransition)
	assert.Equal(t, [Tracks]float64{3, 3, 6}, l.AnimatedColumns())
}

func TestEase(t *testing.T) {
	assert.Equal(t, 0.0, Ease(0))
	assert.Equal(t, 1.0, Ease(1))
	assert.Equal(t, 1.0, Ease(1.5))

	prev := 0.0
	for p := 0.05; p < 1; p += 0.05 {
		v := Ease(p)
		assert.Greater(t, v, prev, "ease must be increasing at %v", p)
		prev = v
	}
	// CSS "ease" is well past linear at the midpoint.
	assert.InDelta(t, 0.8024, Ease(0.5), 0.001)
}
