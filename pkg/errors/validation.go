package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeName validates a tree node name.
// Empty names are permitted (unnamed nodes draw no label); everything else
// must be printable and must not collide with the path syntax used to
// address nodes in layouts and sinks.
//
// The validation rules are intentionally conservative:
//   - No control characters or null bytes
//   - No slash (reserved as the path separator)
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "node name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "node name contains control characters")
		}
	}

	if strings.Contains(name, "/") {
		return New(ErrCodeInvalidName, "node name cannot contain %q (reserved as path separator)", "/")
	}

	return nil
}

// maxCanvasEdge bounds render dimensions. Anything larger is almost
// certainly a units mistake and would exhaust memory in the raster sink.
const maxCanvasEdge = 65536

// ValidateDimensions validates a render canvas size.
func ValidateDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidBounds, "canvas dimensions must be positive, got %gx%g", width, height)
	}

	if width > maxCanvasEdge || height > maxCanvasEdge {
		return New(ErrCodeInvalidBounds, "canvas dimensions too large (max %d per edge)", maxCanvasEdge)
	}

	return nil
}

// ValidateScale validates a raster supersampling factor.
func ValidateScale(scale int) error {
	if scale < 1 || scale > 8 {
		return New(ErrCodeInvalidInput, "scale must be between 1 and 8, got %d", scale)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It rejects empty paths and embedded null bytes; everything else is left
// to the operating system.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains a null byte")
	}

	return nil
}
