// Package sink encodes a recorded preview into output formats.
//
// The render passes draw onto a [surface.Recorder]; every sink replays that
// recording onto its own surface and encodes the result:
//
//   - [RenderPNG]: raster via the gg canvas, with an optional scale factor
//   - [RenderJPEG]: raster via the gg canvas with a JPEG quality setting
//   - [RenderSVG]: vector paths in device coordinates
//   - [RenderPDF]: the SVG converted with rsvg-convert
//   - [RenderJSON]: the recorded commands plus bounds and fit metadata
//
// [Render] dispatches on a format name.
package sink
