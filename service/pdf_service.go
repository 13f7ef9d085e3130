package service

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tieubaoca/docextract-be/config"
	"github.com/tieubaoca/docextract-be/types"
)

// PDFService classifies PDFs as digital or scanned and extracts text and
// tables from the digital ones. Scanned PDFs are handed to the OCR service
// by the dispatcher.
type PDFService struct {
	samplePages  int // pages probed during classification
	minTextChars int // trimmed chars above which a PDF counts as digital
}

func NewPDFService(cfg config.ClassifierConfig) *PDFService {
	if cfg.SamplePages <= 0 {
		cfg.SamplePages = 5
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = 64
	}
	return &PDFService{
		samplePages:  cfg.SamplePages,
		minTextChars: cfg.MinTextChars,
	}
}

// Classify samples up to samplePages pages and sums the trimmed characters of
// their text layers. Scanned PDFs carry no text layer, so falling short of
// minTextChars means scanned. A zero-page PDF classifies as digital: there is
// no scanned-page evidence to go on.
func (s *PDFService) Classify(data []byte) (pdfType types.PDFType, err error) {
	defer recoverMalformedPDF(&err)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return types.PDFTypeDigital, nil
	}

	sample := numPages
	if sample > s.samplePages {
		sample = s.samplePages
	}

	chars := 0
	for i := 1; i <= sample; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, textErr := page.GetPlainText(nil)
		if textErr != nil {
			continue
		}
		chars += len(strings.TrimSpace(text))
		if chars > s.minTextChars {
			return types.PDFTypeDigital, nil
		}
	}
	return types.PDFTypeScanned, nil
}

// ExtractDigital pulls the text layer of every page and runs positional table
// reconstruction on each. A page that fails to yield text still appears, with
// empty text, so page numbering stays contiguous.
func (s *PDFService) ExtractDigital(fileName string, data []byte) types.Document {
	pages, err := s.extractPages(data)
	if err != nil {
		return types.NewErrorDocument(fileName, err.Error())
	}
	return types.NewDocument(fileName, pages)
}

func (s *PDFService) extractPages(data []byte) (pages []types.Page, err error) {
	defer recoverMalformedPDF(&err)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]types.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		text := ""
		tables := []types.Table{}
		if !page.V.IsNull() {
			plain, textErr := page.GetPlainText(nil)
			if textErr != nil {
				log.Printf("Warning: failed to extract text from page %d: %v", i, textErr)
			} else {
				text = strings.TrimSpace(plain)
			}
			tables = pageTables(page)
		}
		pages = append(pages, types.Page{PageNo: i, Text: text, Tables: tables})
	}
	return pages, nil
}

// pageTables clusters the page's positioned text fragments into tables. PDF
// coordinates grow upward, so Y is negated before clustering top to bottom.
func pageTables(page pdf.Page) (tables []types.Table) {
	tables = []types.Table{}
	defer func() {
		if r := recover(); r != nil {
			tables = []types.Table{}
		}
	}()

	content := page.Content()
	boxes := make([]textBox, 0, len(content.Text))
	for _, t := range content.Text {
		boxes = append(boxes, textBox{
			x:    t.X,
			y:    -t.Y,
			w:    t.W,
			h:    t.FontSize,
			text: t.S,
		})
	}
	if found := detectTables(boxes); found != nil {
		tables = found
	}
	return tables
}

// recoverMalformedPDF converts the panics the pdf parser raises on malformed
// input into ordinary errors.
func recoverMalformedPDF(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed pdf: %v", r)
	}
}
