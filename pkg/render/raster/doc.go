// Package raster draws a drawing onto a [surface.Surface].
//
// # Frames
//
// [Draw] sets up two frames before walking the entities. The outer frame
// rotates the drawing about the surface center by the caller's bulk
// rotation and flips the Y axis so drawing units point up. The inner frame
// translates by the fit offset and scales by the fit scale. One surface pixel
// in the inner frame is 1/scale drawing units; that base width is
// compensated for the cumulative instance scale at every nesting level.
//
// # Block Instances
//
// An INSERT resolves its block by exact name only, unlike the bounds pass,
// which falls back to the default block. A resolved instance pushes its
// position and rotation onto the surface transform stack; the instance scale
// is carried in the child pose and applied to coordinates by hand, so stroke
// widths stay under control. Unresolved instances draw nothing.
//
// # Failures
//
// The pass is guarded as a whole. Any entity error or panic abandons the pass
// and [Draw] returns a RENDER_FAILURE error; the caller is expected to draw a
// fallback. [WithIsolation] instead logs and skips failing entities.
package raster
