package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/tieubaoca/docextract-be/types"
	"github.com/xuri/excelize/v2"
)

// OfficeService extracts text and tables from OOXML documents. DOCX bodies
// are read straight from word/document.xml; XLSX goes through excelize with
// one Page per worksheet.
type OfficeService struct{}

func NewOfficeService() *OfficeService {
	return &OfficeService{}
}

// DOCX is a zip container; tags are matched by local name so the wordprocessingml
// namespace never needs spelling out.
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Texts []string `xml:"t"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

// ExtractDOCX flattens a word document into a single page: concatenated
// paragraph text plus every embedded table as a Table record.
func (s *OfficeService) ExtractDOCX(fileName string, data []byte) types.Document {
	body, err := readDocxBody(data)
	if err != nil {
		return types.NewErrorDocument(fileName, fmt.Sprintf("not a valid docx file: %v", err))
	}

	var textParts []string
	for _, p := range body.Paragraphs {
		if text := strings.TrimSpace(paragraphText(p)); text != "" {
			textParts = append(textParts, text)
		}
	}

	tables := []types.Table{}
	for _, tbl := range body.Tables {
		rows := make(types.Table, 0, len(tbl.Rows))
		for _, tr := range tbl.Rows {
			cells := make([]string, 0, len(tr.Cells))
			for _, tc := range tr.Cells {
				cells = append(cells, cellText(tc))
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		if len(rows) > 0 {
			tables = append(tables, rows)
		}
	}

	page := types.Page{
		PageNo: 1,
		Text:   strings.Join(textParts, "\n\n"),
		Tables: tables,
	}
	return types.NewDocument(fileName, []types.Page{page})
}

func readDocxBody(data []byte) (*docxBody, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		var doc docxDocument
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return &doc.Body, nil
	}
	return nil, fmt.Errorf("missing word/document.xml")
}

func paragraphText(p docxParagraph) string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			b.WriteString(t)
		}
	}
	return b.String()
}

func cellText(tc docxCell) string {
	parts := make([]string, 0, len(tc.Paragraphs))
	for _, p := range tc.Paragraphs {
		if text := strings.TrimSpace(paragraphText(p)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// ExtractXLSX turns each worksheet into one Page whose content is a single
// Table of the sheet rows; text stays empty. Row lengths follow the sheet,
// so ragged rows pass through untouched.
func (s *OfficeService) ExtractXLSX(fileName string, data []byte) types.Document {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return types.NewErrorDocument(fileName, fmt.Sprintf("not a valid xlsx file: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	pages := make([]types.Page, 0, len(sheets))
	for i, name := range sheets {
		tables := []types.Table{}
		rows, rowsErr := f.GetRows(name)
		if rowsErr != nil {
			log.Printf("Warning: failed to read sheet %q: %v", name, rowsErr)
		} else if len(rows) > 0 {
			table := make(types.Table, 0, len(rows))
			for _, row := range rows {
				if row == nil {
					row = []string{}
				}
				table = append(table, row)
			}
			tables = append(tables, table)
		}
		pages = append(pages, types.Page{PageNo: i + 1, Text: "", Tables: tables})
	}
	return types.NewDocument(fileName, pages)
}
