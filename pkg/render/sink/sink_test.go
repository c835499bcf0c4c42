package sink

import (
	"bytes"
	"encoding/json"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

func sample() *surface.Recorder {
	rec := surface.NewRecorder(64, 48)
	fallback.Draw(rec, fallback.MsgNoContent)
	return rec
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name string
		opts []PNGOption
		w, h int
	}{
		{"default", nil, 64, 48},
		{"scaled", []PNGOption{WithScale(2)}, 128, 96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(sample(), tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
			r, g, b, _ := img.At(0, 0).RGBA()
			if r>>8 != 0xf0 || g>>8 != 0xf0 || b>>8 != 0xf0 {
				t.Errorf("corner pixel = %x %x %x, want f0 f0 f0", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestRenderJPEG(t *testing.T) {
	data, err := RenderJPEG(sample(), WithQuality(80))
	if err != nil {
		t.Fatalf("RenderJPEG() error = %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("jpeg.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("size = %v, want 64x48", b)
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(sample(), WithEmbeddedFont()))
	for _, want := range []string{"<svg", fallback.MsgNoContent, "@font-face", `fill="#f0f0f0"`} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	b := bounds.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 0}
	data, err := RenderJSON(sample(),
		WithJSONBounds(b),
		WithJSONFit(fit.Fit(b, 64, 48)),
		WithJSONRotation(90),
		WithJSONFallback(fallback.MsgNoContent),
	)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out struct {
		Width    int               `json:"width"`
		Rotation float64           `json:"rotation"`
		Bounds   bounds.Bounds     `json:"bounds"`
		Fallback string            `json:"fallback"`
		Commands []surface.Command `json:"commands"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if out.Width != 64 || out.Rotation != 90 || out.Bounds != b || out.Fallback != fallback.MsgNoContent {
		t.Errorf("metadata = %+v", out)
	}
	if len(out.Commands) != 4 || out.Commands[3].Op != surface.OpFillText {
		t.Errorf("commands = %+v", out.Commands)
	}
}

func TestRender(t *testing.T) {
	for _, format := range []string{FormatPNG, "jpg", FormatSVG, FormatJSON} {
		data, err := Render(format, sample(), Options{})
		if err != nil {
			t.Errorf("Render(%q) error = %v", format, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Render(%q) returned no data", format)
		}
	}

	if _, err := Render("bmp", sample(), Options{}); err == nil {
		t.Error("Render(bmp) error = nil, want error")
	}
}
