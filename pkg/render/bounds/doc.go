// Package bounds computes the axis-aligned extent of the visible geometry in
// a drawing.
//
// # Overview
//
// [Compute] walks the top-level entities and recursively every referenced
// block, carrying a [pose.Pose] composed with the additive bounds rule. Each
// leaf entity merges a set of points into a running [Bounds]:
//
//   - LINE, POLYLINE, LWPOLYLINE: every vertex
//   - CIRCLE: the square around the center, radius scaled
//   - ARC: treated as the full circle, ignoring its start and end angles
//   - ELLIPSE: the four points at parametric angles 0, 90, 180 and 270 degrees
//   - SPLINE: the control points, without curve evaluation
//
// The curve rules are approximations. An arc may overestimate its true extent
// and an oblique ellipse may under- or overestimate it.
//
// # Block Resolution
//
// An INSERT resolves its block by exact name and falls back to
// [drawing.DefaultBlockName]. When neither exists and the insert has a
// position, that position (offset by the parent translation) is merged as a
// single point. Otherwise the insert is skipped.
//
// # Failures
//
// Processing is isolated per entity. A failing entity is logged, recorded in
// [Result.Errors] as an ENTITY_PROCESSING error and skipped; the pass always
// completes. Block reference cycles and chains deeper than the configured
// limit are reported the same way.
//
// When nothing finite was merged the result is [Default], so downstream
// fitting never divides by zero.
package bounds
