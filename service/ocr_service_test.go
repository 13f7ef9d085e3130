package service

import (
	"bytes"
	"image"
	"testing"
)

func TestPageIndexFromName(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"/tmp/x/page-1.png", 1},
		{"/tmp/x/page-02.png", 2},
		{"/tmp/x/page-10.png", 10},
		{"weird.png", 0},
	}
	for _, tc := range cases {
		if got := pageIndexFromName(tc.name); got != tc.want {
			t.Fatalf("pageIndexFromName(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBlankProbeImageDecodes(t *testing.T) {
	data := blankProbeImage()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" {
		t.Fatalf("format = %q, want png", format)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
}
