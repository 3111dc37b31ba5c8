package task

import (
	"image"
	"testing"
)

func coverage(t *testing.T, bounds image.Rectangle, rects []image.Rectangle) []int {
	t.Helper()
	counts := make([]int, bounds.Dx()*bounds.Dy())
	for _, r := range rects {
		if !r.In(bounds) {
			t.Fatalf("rectangle %v is outside of %v", r, bounds)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				counts[(y-bounds.Min.Y)*bounds.Dx()+(x-bounds.Min.X)]++
			}
		}
	}
	return counts
}

func TestTilesCoverAreaExactlyOnce(t *testing.T) {
	cases := []struct {
		area     image.Rectangle
		tileSize int
		want     int
	}{
		{image.Rect(0, 0, 800, 600), 100, 48},
		{image.Rect(0, 0, 250, 120), 100, 6},
		{image.Rect(10, 20, 17, 23), 4, 2},
		{image.Rect(0, 0, 1, 1), 100, 1},
		{image.Rect(0, 0, 64, 64), 0, 1},
		{image.Rect(0, 500, 800, 600), 100, 8},
	}
	for _, c := range cases {
		tiles := Tiles(c.area, c.tileSize)
		if len(tiles) != c.want {
			t.Errorf("Tiles(%v, %d) returned %d tiles, want %d", c.area, c.tileSize, len(tiles), c.want)
		}
		for i, n := range coverage(t, c.area, tiles) {
			if n != 1 {
				t.Fatalf("Tiles(%v, %d) covers pixel %d %d times", c.area, c.tileSize, i, n)
			}
		}
	}
}

func TestTilesRowMajor(t *testing.T) {
	tiles := Tiles(image.Rect(0, 0, 250, 150), 100)
	want := []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(100, 0, 200, 100),
		image.Rect(200, 0, 250, 100),
		image.Rect(0, 100, 100, 150),
		image.Rect(100, 100, 200, 150),
		image.Rect(200, 100, 250, 150),
	}
	if len(tiles) != len(want) {
		t.Fatalf("got %d tiles, want %d", len(tiles), len(want))
	}
	for i := range want {
		if tiles[i] != want[i] {
			t.Errorf("tile %d = %v, want %v", i, tiles[i], want[i])
		}
	}
}

func TestTilesEmptyArea(t *testing.T) {
	if tiles := Tiles(image.Rectangle{}, 100); len(tiles) != 0 {
		t.Errorf("got %d tiles for an empty area", len(tiles))
	}
}

func TestRowBands(t *testing.T) {
	cases := []struct {
		height, count int
	}{
		{600, 8},
		{601, 8},
		{7, 3},
		{3, 5},
		{1, 1},
	}
	for _, c := range cases {
		bands := RowBands(c.height, c.count)
		if len(bands) != c.count {
			t.Fatalf("RowBands(%d, %d) returned %d bands", c.height, c.count, len(bands))
		}
		next, smallest, largest := 0, c.height, 0
		for _, b := range bands {
			if b.StartRow != next {
				t.Errorf("RowBands(%d, %d): band starts at %d, want %d", c.height, c.count, b.StartRow, next)
			}
			next += b.NumRows
			smallest = min(smallest, b.NumRows)
			largest = max(largest, b.NumRows)
		}
		if next != c.height {
			t.Errorf("RowBands(%d, %d) covers %d rows", c.height, c.count, next)
		}
		if largest-smallest > 1 {
			t.Errorf("RowBands(%d, %d) band sizes range from %d to %d", c.height, c.count, smallest, largest)
		}
	}
}

func TestRowBandsExtraRowsGoFirst(t *testing.T) {
	bands := RowBands(10, 4)
	want := []Band{{0, 3}, {3, 3}, {6, 2}, {8, 2}}
	for i := range want {
		if bands[i] != want[i] {
			t.Errorf("band %d = %v, want %v", i, bands[i], want[i])
		}
	}
}

func TestExposedArea(t *testing.T) {
	size := ImageSize{Width: 800, Height: 600}
	cases := []struct {
		scroll Scroll
		want   image.Rectangle
	}{
		{Scroll{}, image.Rectangle{}},
		{Scroll{X: 10}, image.Rect(790, 0, 800, 600)},
		{Scroll{X: -10}, image.Rect(0, 0, 10, 600)},
		{Scroll{Y: 20}, image.Rect(0, 580, 800, 600)},
		{Scroll{Y: -20}, image.Rect(0, 0, 800, 20)},
		{Scroll{X: 5, Y: 5}, size.Rect()},
		{Scroll{X: 1000}, size.Rect()},
	}
	for _, c := range cases {
		if got := ExposedArea(size, c.scroll); got != c.want {
			t.Errorf("ExposedArea(%v) = %v, want %v", c.scroll, got, c.want)
		}
	}
}

func TestScrolledSection(t *testing.T) {
	size := ImageSize{Width: 64, Height: 64}
	section := FractalSection{CenterX: -0.5, CenterY: 0, Height: 4}

	got := section.Scrolled(size, Scroll{X: 8, Y: -16})
	want := FractalSection{CenterX: 0, CenterY: 1, Height: 4}
	if got != want {
		t.Errorf("Scrolled() = %v, want %v", got, want)
	}
}

func TestScrollRequest(t *testing.T) {
	size := ImageSize{Width: 64, Height: 64}
	previous := NewImageRequest(size, FractalSection{CenterX: -0.5, Height: 4}, 100, 16)

	r := ScrollRequest(previous, Scroll{X: 8})
	if r.Area != image.Rect(56, 0, 64, 64) {
		t.Errorf("area = %v", r.Area)
	}
	if r.FractalSection.CenterX != 0 {
		t.Errorf("center x = %v, want 0", r.FractalSection.CenterX)
	}
	if r.MaxIterations != 100 || r.TileSize != 16 || r.ImageSize != size {
		t.Errorf("request lost settings: %v", r)
	}
}
