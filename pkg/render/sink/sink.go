package sink

import (
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatSVG:  "image/svg+xml",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ValidateFormat reports an INVALID_FORMAT error for unknown formats.
func ValidateFormat(format string) error {
	if !ValidFormats[NormalizeFormat(format)] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, svg, pdf, json)", format)
	}
	return nil
}

// NormalizeFormat maps aliases such as "jpg" to their canonical name.
func NormalizeFormat(format string) string {
	if format == "jpg" {
		return FormatJPEG
	}
	return format
}

// Options collects the per-format options used by [Render].
type Options struct {
	PNG  []PNGOption
	JPEG []JPEGOption
	SVG  []SVGOption
	JSON []JSONOption
}

// Render encodes rec in the given format.
func Render(format string, rec *surface.Recorder, opts Options) ([]byte, error) {
	switch NormalizeFormat(format) {
	case FormatPNG:
		return RenderPNG(rec, opts.PNG...)
	case FormatJPEG:
		return RenderJPEG(rec, opts.JPEG...)
	case FormatSVG:
		return RenderSVG(rec, opts.SVG...), nil
	case FormatPDF:
		return RenderPDF(rec, WithPDFSVGOptions(opts.SVG...))
	case FormatJSON:
		return RenderJSON(rec, opts.JSON...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
