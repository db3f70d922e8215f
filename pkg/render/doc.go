// Package render turns positioned layouts into self-contained SVG documents.
//
// The hand-drawn theme builds every shape from jittered quadratic and cubic
// Béziers driven by a seeded pseudo-random stream; the clean and minimal
// themes use native SVG primitives. Rendering is byte-deterministic: the
// random stream is reset at the start of every render and the draw order is
// fixed, so equal inputs produce identical documents.
//
// All coordinate emissions are formatted to one decimal place to pin the
// output bytes and keep diffs quiet.
package render
