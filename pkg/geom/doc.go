// Package geom defines the cube vocabulary used by the closet engine.
// Axis-aligned cuboids are addressed by eight named vertices and six faces,
// and every relation between them is an explicit lookup rather than bit math
// at the call site.
package geom
