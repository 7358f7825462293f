package render

import (
	"image"
	"testing"
)

func TestScale(t *testing.T) {
	cases := []struct {
		name     string
		w, h     int
		maxWidth int
		wantW    int
		wantH    int
	}{
		{"downscale", 1280, 720, 320, 320, 180},
		{"already narrow", 200, 100, 320, 200, 100},
		{"exact width", 320, 240, 320, 320, 240},
		{"no limit", 1280, 720, 0, 1280, 720},
		{"tall sliver", 1000, 1, 100, 100, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
			got := Scale(src, tc.maxWidth)
			b := got.Bounds()
			if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tc.wantW, tc.wantH)
			}
		})
	}
}

func TestThumbnailsMissingFile(t *testing.T) {
	if _, err := Thumbnails("no-such-deck.pptx", 320); err == nil {
		t.Fatal("expected error for missing file")
	}
}
