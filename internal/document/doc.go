// Package document turns rendered pages into output containers: raster
// screenshots into single-page PDFs, and ordered slide images into an Office
// Open XML presentation.
package document
