package types

// FormatTag identifies the extraction strategy for an uploaded file. The set
// is closed; anything else maps to FormatUnsupported.
type FormatTag string

const (
	FormatPDF         FormatTag = "pdf"
	FormatDOCX        FormatTag = "docx"
	FormatXLSX        FormatTag = "xlsx"
	FormatImage       FormatTag = "image"
	FormatZip         FormatTag = "zip"
	FormatUnsupported FormatTag = "unsupported"
)

// PDFType distinguishes machine-readable PDFs from scans.
type PDFType string

const (
	PDFTypeDigital PDFType = "digital"
	PDFTypeScanned PDFType = "scanned"
)

// Table is a 2-D grid of cell strings. The first row is conventionally a
// header for consumers. Ragged rows are legal and round-trip as-is.
type Table [][]string

// Page is one page, worksheet or image within a Document.
type Page struct {
	PageNo int     `json:"page_no"`
	Text   string  `json:"text"`
	Tables []Table `json:"tables"`
}

// Document is the result of processing one logical file. A ZIP entry counts
// as its own Document. PDFType is set only when the source was a PDF; Error
// is set only when extraction failed (fully or partially).
type Document struct {
	FileName   string `json:"file_name"`
	PDFType    string `json:"pdf_type,omitempty"`
	TotalPages int    `json:"total_pages"`
	Pages      []Page `json:"pages"`
	Error      string `json:"error,omitempty"`
}

// ExtractionResult is the top-level response for one upload request.
type ExtractionResult struct {
	Status         string     `json:"status"`
	FileName       string     `json:"file_name"`
	FileType       string     `json:"file_type"`
	TotalDocuments int        `json:"total_documents"`
	Documents      []Document `json:"documents"`
}

// NewDocument builds a success Document; TotalPages always mirrors len(pages).
func NewDocument(fileName string, pages []Page) Document {
	if pages == nil {
		pages = []Page{}
	}
	return Document{
		FileName:   fileName,
		TotalPages: len(pages),
		Pages:      pages,
	}
}

// NewErrorDocument builds a per-file failure Document with no pages.
func NewErrorDocument(fileName, message string) Document {
	return Document{
		FileName: fileName,
		Pages:    []Page{},
		Error:    message,
	}
}

// NewExtractionResult wraps a flattened Document sequence into the response
// envelope.
func NewExtractionResult(fileName string, fileType FormatTag, documents []Document) ExtractionResult {
	if documents == nil {
		documents = []Document{}
	}
	return ExtractionResult{
		Status:         "success",
		FileName:       fileName,
		FileType:       string(fileType),
		TotalDocuments: len(documents),
		Documents:      documents,
	}
}
