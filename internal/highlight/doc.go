// Package highlight renders source files into highlighted HTML.
// It uses the Chroma library to do this work.
//
// Rendered files come out as blobs in the shape that package excerpt
// slices into per-line fragments: the whole file inside a single
// <code><span> container, lines separated by [excerpt.LineBreak]
// markers, and token spans running across markers when a token covers
// several lines.
package highlight
