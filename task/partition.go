package task

import (
	"image"
)

// Tiles splits area into a row-major grid of tiles with edge length tileSize.
// Tiles in the last row and column are clipped to the area. A tileSize of zero
// or less yields the whole area as a single tile.
func Tiles(area image.Rectangle, tileSize int) []image.Rectangle {
	if area.Empty() {
		return nil
	}
	if tileSize <= 0 {
		return []image.Rectangle{area}
	}

	tilesX := (area.Dx() + tileSize - 1) / tileSize
	tilesY := (area.Dy() + tileSize - 1) / tileSize
	tiles := make([]image.Rectangle, 0, tilesX*tilesY)

	for y := area.Min.Y; y < area.Max.Y; y += tileSize {
		y1 := min(y+tileSize, area.Max.Y)
		for x := area.Min.X; x < area.Max.X; x += tileSize {
			x1 := min(x+tileSize, area.Max.X)
			tiles = append(tiles, image.Rect(x, y, x1, y1))
		}
	}

	return tiles
}

// Band is a contiguous range of image rows.
type Band struct {
	StartRow int
	NumRows  int
}

// RowBands splits height rows into count contiguous bands. Every band gets
// height/count rows and the first height%count bands get one extra row.
func RowBands(height int, count int) []Band {
	if count <= 0 || height <= 0 {
		return nil
	}

	minRows := height / count
	extraRows := height % count
	bands := make([]Band, count)
	nextStartRow := 0

	for i := range bands {
		numRows := minRows
		if extraRows > 0 {
			numRows++
			extraRows--
		}
		bands[i] = Band{StartRow: nextStartRow, NumRows: numRows}
		nextStartRow += numRows
	}

	return bands
}

// ExposedArea returns the part of the image that has no valid results after
// scrolling. A single rectangle cannot describe the L-shaped border of a
// diagonal scroll, so that yields the whole image.
func ExposedArea(size ImageSize, scroll Scroll) image.Rectangle {
	full := size.Rect()

	switch {
	case scroll.IsZero():
		return image.Rectangle{}
	case scroll.X != 0 && scroll.Y != 0:
		return full
	case scroll.X > 0:
		return image.Rect(size.Width-scroll.X, 0, size.Width, size.Height).Intersect(full)
	case scroll.X < 0:
		return image.Rect(0, 0, -scroll.X, size.Height).Intersect(full)
	case scroll.Y > 0:
		return image.Rect(0, size.Height-scroll.Y, size.Width, size.Height).Intersect(full)
	default:
		return image.Rect(0, 0, size.Width, -scroll.Y).Intersect(full)
	}
}
