package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/tieubaoca/docextract-be/types"
	"github.com/xuri/excelize/v2"
)

// buildDocx assembles a minimal OOXML word document in memory.
func buildDocx(t *testing.T, paragraphs []string, tables []types.Table) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	for _, tbl := range tables {
		body.WriteString("<w:tbl>")
		for _, row := range tbl {
			body.WriteString("<w:tr>")
			for _, cell := range row {
				fmt.Fprintf(&body, "<w:tc><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:tc>", cell)
			}
			body.WriteString("</w:tr>")
		}
		body.WriteString("</w:tbl>")
	}
	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+
		`<w:body>%s</w:body></w:document>`, body.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	table := types.Table{
		{"Name", "Amount"},
		{"Alice", "120"},
	}
	data := buildDocx(t, []string{"First paragraph.", "Second paragraph."}, []types.Table{table})

	doc := NewOfficeService().ExtractDOCX("letter.docx", data)
	if doc.Error != "" {
		t.Fatalf("unexpected error: %s", doc.Error)
	}
	if doc.TotalPages != 1 || len(doc.Pages) != 1 {
		t.Fatalf("docx must flatten to one page: %#v", doc)
	}
	page := doc.Pages[0]
	if page.PageNo != 1 {
		t.Fatalf("page_no = %d, want 1", page.PageNo)
	}
	if !strings.Contains(page.Text, "First paragraph.") || !strings.Contains(page.Text, "Second paragraph.") {
		t.Fatalf("missing paragraph text: %q", page.Text)
	}
	if len(page.Tables) != 1 || !reflect.DeepEqual(page.Tables[0], table) {
		t.Fatalf("unexpected tables: %#v", page.Tables)
	}
}

func TestExtractDOCXCorrupt(t *testing.T) {
	doc := NewOfficeService().ExtractDOCX("broken.docx", []byte("this is not a zip container"))
	if doc.Error == "" {
		t.Fatal("expected error for corrupt docx")
	}
	if len(doc.Pages) != 0 || doc.TotalPages != 0 {
		t.Fatalf("error document must carry no pages: %#v", doc)
	}
	if doc.FileName != "broken.docx" {
		t.Fatalf("file name not preserved: %q", doc.FileName)
	}
}

func TestExtractDOCXMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("unrelated.xml")
	w.Write([]byte("<x/>"))
	zw.Close()

	doc := NewOfficeService().ExtractDOCX("odd.docx", buf.Bytes())
	if doc.Error == "" || !strings.Contains(doc.Error, "word/document.xml") {
		t.Fatalf("expected missing body error, got %#v", doc)
	}
}

func buildXLSX(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "B1", "Amount")
	f.SetCellValue("Sheet1", "A2", "Alice")
	f.SetCellValue("Sheet1", "B2", 120)
	// Ragged third row: only the first cell is set.
	f.SetCellValue("Sheet1", "A3", "Bob")

	if _, err := f.NewSheet("Summary"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetCellValue("Summary", "A1", "Total")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}

func TestExtractXLSX(t *testing.T) {
	doc := NewOfficeService().ExtractXLSX("book.xlsx", buildXLSX(t))
	if doc.Error != "" {
		t.Fatalf("unexpected error: %s", doc.Error)
	}
	if doc.TotalPages != 2 {
		t.Fatalf("expected one page per sheet, got %d", doc.TotalPages)
	}
	for i, page := range doc.Pages {
		if page.PageNo != i+1 {
			t.Fatalf("page_no not contiguous: %#v", doc.Pages)
		}
		if page.Text != "" {
			t.Fatalf("xlsx pages are table-first, text must be empty: %q", page.Text)
		}
	}

	first := doc.Pages[0]
	if len(first.Tables) != 1 {
		t.Fatalf("expected one table for the sheet, got %d", len(first.Tables))
	}
	rows := first.Tables[0]
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %#v", rows)
	}
	if !reflect.DeepEqual(rows[0], []string{"Name", "Amount"}) {
		t.Fatalf("unexpected header row: %#v", rows[0])
	}
	if rows[1][0] != "Alice" || rows[1][1] != "120" {
		t.Fatalf("unexpected data row: %#v", rows[1])
	}
	if len(rows[2]) >= 2 && rows[2][1] != "" {
		t.Fatalf("ragged row must not grow content: %#v", rows[2])
	}
}

func TestExtractXLSXCorrupt(t *testing.T) {
	doc := NewOfficeService().ExtractXLSX("broken.xlsx", []byte("garbage"))
	if doc.Error == "" || len(doc.Pages) != 0 {
		t.Fatalf("expected error document, got %#v", doc)
	}
}
