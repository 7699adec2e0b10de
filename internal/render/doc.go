// Package render paints pop tips to raster images with fogleman/gg. It also
// measures text with the same font faces, so sizes computed by the layout
// package match what is drawn.
package render
