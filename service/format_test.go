package service

import (
	"testing"

	"github.com/tieubaoca/docextract-be/types"
)

func TestDetectFormat(t *testing.T) {
	content := []byte("data")
	cases := []struct {
		name string
		want types.FormatTag
	}{
		{"report.pdf", types.FormatPDF},
		{"REPORT.PDF", types.FormatPDF},
		{"letter.docx", types.FormatDOCX},
		{"sheet.xlsx", types.FormatXLSX},
		{"archive.zip", types.FormatZip},
		{"scan.png", types.FormatImage},
		{"scan.jpg", types.FormatImage},
		{"scan.JPEG", types.FormatImage},
		{"scan.bmp", types.FormatImage},
		{"scan.tiff", types.FormatImage},
		{"notes.txt", types.FormatUnsupported},
		{"legacy.doc", types.FormatUnsupported},
		{"legacy.xls", types.FormatUnsupported},
		{"noextension", types.FormatUnsupported},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.name, content); got != tc.want {
			t.Fatalf("DetectFormat(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDetectFormatEmptyContent(t *testing.T) {
	if got := DetectFormat("report.pdf", nil); got != types.FormatUnsupported {
		t.Fatalf("empty content must be unsupported, got %q", got)
	}
}

func TestSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.DOCX", "c.xlsx", "d.zip", "e.png"} {
		if !SupportedExtension(name) {
			t.Fatalf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"a.txt", "b.exe", "c"} {
		if SupportedExtension(name) {
			t.Fatalf("expected %q to be unsupported", name)
		}
	}
}
