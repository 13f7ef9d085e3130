package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	_ "image/jpeg"

	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/tieubaoca/docextract-be/config"
	"github.com/tieubaoca/docextract-be/types"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// OCRService recognizes text in images and scanned PDFs through Tesseract.
// Scanned PDF pages are rasterized with pdftoppm first. Word bounding boxes
// from the engine feed the same table reconstruction used for digital PDFs;
// confidences are advisory and only logged.
type OCRService struct {
	languages []string
	dpi       int

	probeOnce sync.Once
	probeErr  error
}

func NewOCRService(cfg config.OCRConfig) *OCRService {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &OCRService{
		languages: cfg.Languages,
		dpi:       cfg.DPI,
	}
}

// Available probes the engine once with a blank image. After a failed probe
// every caller gets the same error immediately, so a dead engine does not
// slow down the rest of a batch.
func (s *OCRService) Available() error {
	s.probeOnce.Do(func() {
		if _, _, err := s.recognize(blankProbeImage()); err != nil {
			s.probeErr = fmt.Errorf("ocr engine unavailable: %w", err)
		}
	})
	return s.probeErr
}

// ExtractImage runs recognition on a single image file.
func (s *OCRService) ExtractImage(fileName string, data []byte) types.Document {
	if err := s.Available(); err != nil {
		return types.NewErrorDocument(fileName, err.Error())
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return types.NewErrorDocument(fileName, fmt.Sprintf("unreadable image: %v", err))
	}

	text, words, err := s.recognize(data)
	if err != nil {
		return types.NewErrorDocument(fileName, fmt.Sprintf("ocr failed: %v", err))
	}
	tables := []types.Table{}
	if found := detectTables(words); found != nil {
		tables = found
	}
	return types.NewDocument(fileName, []types.Page{{PageNo: 1, Text: text, Tables: tables}})
}

// ExtractScannedPDF rasterizes every page and recognizes each one. A page
// whose recognition fails stays in the result with empty text; the Document
// error then records how many pages degraded.
func (s *OCRService) ExtractScannedPDF(fileName string, data []byte) types.Document {
	if err := s.Available(); err != nil {
		return types.NewErrorDocument(fileName, err.Error())
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return types.NewErrorDocument(fileName, fmt.Sprintf("unreadable pdf: %v", err))
	}

	images, err := s.rasterize(data)
	if err != nil {
		return types.NewErrorDocument(fileName, err.Error())
	}
	if len(images) != pageCount {
		log.Printf("Warning: rendered %d pages, pdf reports %d", len(images), pageCount)
	}

	pages := make([]types.Page, 0, len(images))
	failed := 0
	for i, img := range images {
		text := ""
		tables := []types.Table{}
		recognized, words, recErr := s.recognize(img)
		if recErr != nil {
			log.Printf("Warning: ocr failed on page %d: %v", i+1, recErr)
			failed++
		} else {
			text = recognized
			if found := detectTables(words); found != nil {
				tables = found
			}
		}
		pages = append(pages, types.Page{PageNo: i + 1, Text: text, Tables: tables})
	}

	doc := types.NewDocument(fileName, pages)
	if failed > 0 {
		doc.Error = fmt.Sprintf("ocr failed on %d of %d pages", failed, len(images))
	}
	return doc
}

// recognize performs a single Tesseract pass, returning the plain text and
// the recognized word boxes. Bounding boxes are best-effort: if the engine
// cannot produce them the text alone is returned.
func (s *OCRService) recognize(img []byte) (string, []textBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.languages...); err != nil {
		return "", nil, fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return "", nil, fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("recognize text: %w", err)
	}
	text = strings.TrimSpace(text)

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return text, nil, nil
	}
	words := make([]textBox, 0, len(boxes))
	var confSum float64
	for _, b := range boxes {
		confSum += b.Confidence
		words = append(words, textBox{
			x:    float64(b.Box.Min.X),
			y:    float64(b.Box.Min.Y),
			w:    float64(b.Box.Dx()),
			h:    float64(b.Box.Dy()),
			text: b.Word,
		})
	}
	log.Printf("OCR mean confidence %.1f over %d words", confSum/float64(len(boxes)), len(boxes))
	return text, words, nil
}

// rasterize renders every PDF page to PNG in a temp dir via pdftoppm and
// returns the image bytes in page order.
func (s *OCRService) rasterize(data []byte) ([][]byte, error) {
	workDir, err := os.MkdirTemp("", "docextract-pages-")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	pdfPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0644); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	prefix := filepath.Join(workDir, "page")
	cmd := exec.Command("pdftoppm", "-png", "-r", strconv.Itoa(s.dpi), pdfPath, prefix)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("no rendered pages found")
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageIndexFromName(matches[i]) < pageIndexFromName(matches[j])
	})

	images := make([][]byte, 0, len(matches))
	for _, m := range matches {
		img, readErr := os.ReadFile(m)
		if readErr != nil {
			return nil, fmt.Errorf("read rendered page: %w", readErr)
		}
		images = append(images, img)
	}
	return images, nil
}

func pageIndexFromName(name string) int {
	base := strings.TrimSuffix(filepath.Base(name), ".png")
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

func blankProbeImage() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
