package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":           "report.pdf",
		"monthly report.pdf":   "monthly_report.pdf",
		"a/b\\c.docx":          "a_b_c.docx",
		"Đơn hàng.xlsx":        "__n_h_ng.xlsx",
		"safe-name_1.2.tiff":   "safe-name_1.2.tiff",
		"weird$chars%here.png": "weird_chars_here.png",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTimestampedName(t *testing.T) {
	got := TimestampedName("report.pdf")
	if !strings.HasPrefix(got, "report_") || !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("unexpected name: %q", got)
	}
	middle := strings.TrimSuffix(strings.TrimPrefix(got, "report_"), ".pdf")
	if len(middle) != 10 {
		t.Fatalf("expected a unix timestamp suffix: %q", got)
	}
}
