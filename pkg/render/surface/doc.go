// Package surface defines the 2D drawing surface the render passes write to,
// together with its implementations.
//
// # Overview
//
// [Surface] follows the immediate-mode canvas model: a transform stack saved
// and restored with [Surface.Save] and [Surface.Restore], a current path built
// with MoveTo/LineTo/Arc/QuadraticTo and stroked with the current line width.
// Line width is in user space and is interpreted with the transform in
// effect when [Surface.Stroke] is called.
//
// Implementations:
//
//   - [Canvas]: raster surface backed by fogleman/gg, encodable as PNG or JPEG
//   - [Recorder]: records every call as a [Command], tracking device
//     coordinates; used by tests and the JSON command export
//   - [SVG]: writes stroked paths as SVG elements in device coordinates
//
// # Arcs
//
// [Surface.Arc] takes canvas arc semantics: angles in radians, swept
// clockwise in device space unless anticlockwise is set, with a full turn
// when the requested sweep covers 2π or more. [ArcSweep] converts such a
// request into the end angle of a linear sweep.
package surface
