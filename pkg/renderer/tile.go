package renderer

import "image"

// Tile is one unit of render work: a rectangle of pixels owned by exactly
// one task at a time.
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid partitions a width x height image into tiles of at most
// tileSize x tileSize pixels, in row-major order. Edge tiles are clipped
// to the image so the grid covers every pixel exactly once.
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = 64
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{
				ID:     ty*tilesX + tx,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}
