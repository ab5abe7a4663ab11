package fonts

import (
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
)

func TestDefaultFace(t *testing.T) {
	face, err := Default(14)
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if face == nil {
		t.Fatal("Default() returned nil face")
	}
	metrics := face.Metrics()
	if metrics.Height <= 0 {
		t.Errorf("face metrics height = %v, want positive", metrics.Height)
	}
}

func TestFaceEmptyFamilyUsesFallback(t *testing.T) {
	face, err := Face("", 12)
	if err != nil {
		t.Fatalf("Face(\"\") failed: %v", err)
	}
	if face == nil {
		t.Fatal("Face(\"\") returned nil face")
	}
}

func TestFaceUnknownFamily(t *testing.T) {
	_, err := Face("definitely-not-a-font-on-any-system-xyz", 12)
	if err == nil {
		t.Fatal("Face(unknown) = nil error, want FONT_NOT_FOUND")
	}
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("error code = %v, want FONT_NOT_FOUND", errors.GetCode(err))
	}
}
