// Package pose composes the per-frame transforms used while walking nested
// block instances.
//
// # Overview
//
// A [Pose] is a translate/rotate/uniform-scale value carried down the
// recursion of both drawing passes. It is created fresh for every frame and
// never mutated in place.
//
// The two passes compose poses differently, and both rules live here so
// neither pass can accidentally adopt the other's:
//
//   - [Pose.ComposeAdditive] is the bounds rule. The instance position is
//     added to the parent translation as-is, without being rotated or scaled
//     by the parent pose.
//   - [Pose.Nested] is the render rule. The translation and rotation become a
//     [Frame] pushed onto the drawing surface's own transform stack, and the
//     child pose keeps only the cumulative scale.
//
// # Stroke Width
//
// [Pose.StrokeWidth] converts an entity line weight (hundredths of a drawing
// unit) into a stroke width for the current nesting level.
package pose
