package service

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildZip(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExpandFiltersEntries(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"docs/":           nil,
		"docs/report.pdf": []byte("%PDF-fake"),
		"notes.txt":       []byte("skip me"),
		"letter.docx":     []byte("docx bytes"),
		"inner.zip":       []byte("nested"),
		".hidden.pdf":     []byte("dotfile"),
	}, []string{"docs/", "docs/report.pdf", "notes.txt", "letter.docx", "inner.zip", ".hidden.pdf"})

	entries, err := NewArchiveService().Expand(data)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name)
	}
	want := []string{"report.pdf", "letter.docx", "inner.zip"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries = %v, want %v (archive order must be preserved)", got, want)
		}
	}
	if string(entries[0].Data) != "%PDF-fake" {
		t.Fatalf("entry content not preserved: %q", entries[0].Data)
	}
}

func TestExpandInvalidZip(t *testing.T) {
	if _, err := NewArchiveService().Expand([]byte("definitely not a zip")); err == nil {
		t.Fatal("expected error for invalid archive")
	}
}
