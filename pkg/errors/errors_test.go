package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", New(ErrCodeInvalidSize, "raster size %d", 9), "INVALID_SIZE: raster size 9"},
		{"with cause", Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read plan.dxf"), "FILE_NOT_FOUND: read plan.dxf: file does not exist"},
		{"no args", New(ErrCodeParseFailure, "missing EOF"), "PARSE_FAILURE: missing EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read %s", "plan.dxf")
	if err.Message != "read plan.dxf" {
		t.Errorf("Message = %q", err.Message)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("cause lost through Wrap")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestCodeLookup(t *testing.T) {
	parse := New(ErrCodeParseFailure, "bad group code")
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", parse, ErrCodeParseFailure},
		{"fmt wrapped", fmt.Errorf("load: %w", parse), ErrCodeParseFailure},
		{"outer code wins", Wrap(ErrCodeRenderFailure, parse, "render"), ErrCodeRenderFailure},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeNetwork) {
				t.Error("Is(NETWORK_ERROR) = true")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(Wrap(ErrCodeNetwork, errors.New("dial tcp"), "fetch drawing")); got != "fetch drawing" {
		t.Errorf("coded: %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("plain: %q", got)
	}
}

func TestFromPanic(t *testing.T) {
	t.Run("error value", func(t *testing.T) {
		cause := errors.New("boom")
		err := FromPanic(ErrCodeRenderFailure, cause, "render pass")
		if err.Code != ErrCodeRenderFailure || !errors.Is(err, cause) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("non-error value", func(t *testing.T) {
		err := FromPanic(ErrCodeEntityProcessing, "index out of range", "entity %d", 3)
		if want := "ENTITY_PROCESSING: entity 3: index out of range"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}
