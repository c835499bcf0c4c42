// Package drawing defines the hierarchical drawing model consumed by the
// bounds and render passes.
//
// # Overview
//
// A [Model] is a flat list of entities plus a [Library] of named blocks.
// Blocks hold entities of their own, including [Insert] entities that place
// further blocks, so a drawing forms a tree (or, for malformed input, a
// graph with cycles) of block instances.
//
// # Entities
//
// [Entity] is a closed variant. The concrete cases are:
//
//   - [Line]: an ordered list of points (normally two)
//   - [Polyline]: an ordered list of points plus a closed flag; the
//     lightweight variant sets [Polyline.Lightweight]
//   - [Circle]: center and radius
//   - [Arc]: center, radius, start and end angle in degrees
//   - [Ellipse]: center, major axis end (relative to center), axis ratio,
//     start and end parametric angle in radians, sweep direction
//   - [Spline]: control points only; the curve is never evaluated exactly
//   - [Insert]: a positioned, rotated and scaled instance of a named block
//
// Passes switch over the concrete types with a type switch; the unexported
// marker method keeps other packages from adding cases.
//
// # Ownership
//
// Models are read-only for the duration of a bounds or render pass. Neither
// pass retains a reference to the model after it returns.
package drawing
