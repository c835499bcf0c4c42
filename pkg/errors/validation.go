package errors

import (
	"math"
	"strings"
	"unicode"
)

// Raster size limits accepted by the calling layers.
const (
	MinRasterSize = 16
	MaxRasterSize = 8192
)

// ValidatePath validates a local drawing path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidateRasterSize checks that a raster dimension is within bounds.
func ValidateRasterSize(size int) error {
	if size < MinRasterSize || size > MaxRasterSize {
		return New(ErrCodeInvalidSize, "raster size %d out of range [%d, %d]", size, MinRasterSize, MaxRasterSize)
	}
	return nil
}

// ValidateRotation checks that a bulk rotation is a finite multiple of 90
// degrees. The render pass itself accepts any angle; the calling layers
// constrain it.
func ValidateRotation(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return New(ErrCodeInvalidRotation, "rotation must be a finite number")
	}
	if math.Mod(deg, 90) != 0 {
		return New(ErrCodeInvalidRotation, "rotation %g is not a multiple of 90 degrees", deg)
	}
	return nil
}
