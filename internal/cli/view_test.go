package cli

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/pipeline"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
)

func TestBraille(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(0, 0, color.Gray{})
	img.SetGray(1, 3, color.Gray{})

	lines := braille(img, 2, 1)
	if len(lines) != 1 {
		t.Fatalf("lines = %d", len(lines))
	}
	want := string([]rune{0x2800 | 0x01 | 0x80, 0x2800})
	if lines[0] != want {
		t.Errorf("braille = %q, want %q", lines[0], want)
	}
}

func newTestView(m *drawing.Model) viewModel {
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	vm := newViewModel(runner, "test", pipeline.Options{})
	vm.model = m
	next, _ := vm.Update(tea.WindowSizeMsg{Width: 40, Height: 20 + chromeRows})
	return next.(viewModel)
}

func press(vm viewModel, key string) viewModel {
	next, _ := vm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(viewModel)
}

func TestViewModelRotates(t *testing.T) {
	vm := newTestView(&drawing.Model{Entities: []drawing.Entity{
		&drawing.Line{Vertices: []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
	}})
	if vm.cols != 40 || vm.rows != 20 || len(vm.frame) != 20 {
		t.Fatalf("size %dx%d, %d lines", vm.cols, vm.rows, len(vm.frame))
	}
	if !strings.ContainsFunc(strings.Join(vm.frame, ""), func(r rune) bool { return r != 0x2800 }) {
		t.Fatal("frame is blank")
	}
	horizontal := strings.Join(vm.frame, "\n")

	for i, want := range []float64{90, 180, 270, 0} {
		vm = press(vm, "r")
		if vm.rotation != want {
			t.Fatalf("press %d: rotation = %v, want %v", i+1, vm.rotation, want)
		}
	}
	if got := strings.Join(vm.frame, "\n"); got != horizontal {
		t.Error("four rotations did not restore the frame")
	}

	vm = press(vm, "R")
	if vm.rotation != 270 {
		t.Errorf("rotate back: rotation = %v, want 270", vm.rotation)
	}
}

func TestViewModelPlaceholder(t *testing.T) {
	vm := newTestView(&drawing.Model{})
	if vm.message != fallback.MsgNoContent {
		t.Errorf("message = %q", vm.message)
	}
	if !strings.Contains(vm.View(), fallback.MsgNoContent) {
		t.Error("view does not show the placeholder message")
	}

	if _, cmd := vm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}
