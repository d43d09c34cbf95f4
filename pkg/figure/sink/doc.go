// Package sink encodes laid-out figures into files.
//
// [Encode] draws a figure onto a fresh canvas of the requested [Format] and
// returns the encoded bytes; nothing touches the filesystem until
// [WriteFile] replaces the destination in one rename. A figure that fails
// to draw therefore never leaves a partial or truncated file behind.
//
// Supported formats:
//
//   - PDF (default): vector, fonts embedded, fixed creation date
//   - SVG: vector
//   - PNG, JPEG, TIFF: raster at the configured DPI (default 100)
//
// Output is deterministic: identical input produces identical bytes in every
// format, so encoded artifacts can be cached by content hash.
package sink
