package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tieubaoca/docextract-be/types"
)

// OCREngine is the capability the dispatcher needs for scanned input. It is
// injected rather than held as ambient state so an unavailable engine can be
// exercised in isolation.
type OCREngine interface {
	Available() error
	ExtractImage(fileName string, data []byte) types.Document
	ExtractScannedPDF(fileName string, data []byte) types.Document
}

// DispatchService routes one input file to the right classification and
// extraction path and assembles the normalized Document sequence. It holds
// no mutable state, so concurrent Process calls are safe.
type DispatchService struct {
	pdfService     *PDFService
	officeService  *OfficeService
	archiveService *ArchiveService
	ocrEngine      OCREngine
}

func NewDispatchService(
	pdfService *PDFService,
	officeService *OfficeService,
	archiveService *ArchiveService,
	ocrEngine OCREngine,
) *DispatchService {
	return &DispatchService{
		pdfService:     pdfService,
		officeService:  officeService,
		archiveService: archiveService,
		ocrEngine:      ocrEngine,
	}
}

// Process dispatches one uploaded file. ZIP input is expanded one level deep
// and every entry re-dispatched, flattening the results in archive order. A
// failure in any extractor becomes an error Document for that file only.
func (s *DispatchService) Process(fileName string, content []byte) []types.Document {
	return s.process(fileName, content, 0)
}

func (s *DispatchService) process(fileName string, content []byte, depth int) []types.Document {
	if len(content) == 0 {
		return []types.Document{types.NewErrorDocument(fileName, "empty file")}
	}

	switch DetectFormat(fileName, content) {
	case types.FormatZip:
		if depth >= 1 {
			return []types.Document{types.NewErrorDocument(fileName, "nested archives are not supported")}
		}
		entries, err := s.archiveService.Expand(content)
		if err != nil {
			return []types.Document{types.NewErrorDocument(fileName, err.Error())}
		}
		docs := make([]types.Document, 0, len(entries))
		for _, entry := range entries {
			docs = append(docs, s.process(entry.Name, entry.Data, depth+1)...)
		}
		return docs

	case types.FormatPDF:
		pdfType, err := s.pdfService.Classify(content)
		if err != nil {
			return []types.Document{types.NewErrorDocument(fileName, fmt.Sprintf("unreadable pdf: %v", err))}
		}
		var doc types.Document
		if pdfType == types.PDFTypeDigital {
			doc = s.pdfService.ExtractDigital(fileName, content)
		} else {
			doc = s.ocrEngine.ExtractScannedPDF(fileName, content)
		}
		doc.PDFType = string(pdfType)
		return []types.Document{doc}

	case types.FormatDOCX:
		return []types.Document{s.officeService.ExtractDOCX(fileName, content)}

	case types.FormatXLSX:
		return []types.Document{s.officeService.ExtractXLSX(fileName, content)}

	case types.FormatImage:
		return []types.Document{s.ocrEngine.ExtractImage(fileName, content)}

	default:
		ext := strings.ToLower(filepath.Ext(fileName))
		if ext == "" {
			ext = "(none)"
		}
		return []types.Document{types.NewErrorDocument(fileName, fmt.Sprintf("unsupported format: %s", ext))}
	}
}
