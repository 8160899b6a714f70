// Package mosaic lays small copies of source images out in the outline of a
// heart or a star.
//
// A build runs in three steps:
//
//  1. NewMask rasterizes the shape outline into a binary alpha mask.
//  2. LoadTiles decodes each source and resizes it to a square tile.
//  3. Compose walks the canvas in tile-sized cells and stamps tiles, in
//     round-robin order, into every cell whose center is inside the mask.
//
// Tiles are not matched to the image content; they simply repeat in order.
// Generator wires the steps together for a list of file paths.
package mosaic
