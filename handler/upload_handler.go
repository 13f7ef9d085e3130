package handler

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docextract-be/service"
	"github.com/tieubaoca/docextract-be/types"
	"golang.org/x/sync/errgroup"
)

type UploadHandler struct {
	fileService     *service.FileService
	dispatchService *service.DispatchService
	maxUploadSize   int64
}

func NewUploadHandler(
	fileService *service.FileService,
	dispatchService *service.DispatchService,
	maxUploadSize int64,
) *UploadHandler {
	return &UploadHandler{
		fileService:     fileService,
		dispatchService: dispatchService,
		maxUploadSize:   maxUploadSize,
	}
}

// HandleUpload processes one multipart "file" upload and responds with a
// single ExtractionResult. Malformed requests are the only non-2xx path;
// extraction failures come back inside the result as error Documents.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := h.readUpload(file, header)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.fileService.Save(header.Filename, content); err != nil {
		log.Printf("Warning: failed to persist upload %s: %v", header.Filename, err)
	}

	format := service.DetectFormat(header.Filename, content)
	docs := h.dispatchService.Process(header.Filename, content)
	c.JSON(http.StatusOK, types.NewExtractionResult(header.Filename, format, docs))
}

// HandleUploadMultiple processes every multipart "files" entry and responds
// with one ExtractionResult whose documents concatenate each file's sequence
// in submission order. Files run concurrently; indexed results keep the
// ordering deterministic.
func (h *UploadHandler) HandleUploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid multipart payload")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		h.sendError(c, http.StatusBadRequest, "missing files field")
		return
	}

	results := make([][]types.Document, len(files))
	names := make([]string, len(files))

	var g errgroup.Group
	for i, fh := range files {
		i, fh := i, fh
		names[i] = fh.Filename
		g.Go(func() error {
			results[i] = h.processOne(fh)
			return nil
		})
	}
	g.Wait()

	docs := make([]types.Document, 0, len(files))
	for _, r := range results {
		docs = append(docs, r...)
	}
	result := types.NewExtractionResult(strings.Join(names, ","), "batch", docs)
	c.JSON(http.StatusOK, result)
}

// processOne isolates a single batch entry: any failure to read or extract
// it becomes that file's error Document and never touches its siblings.
func (h *UploadHandler) processOne(fh *multipart.FileHeader) []types.Document {
	file, err := fh.Open()
	if err != nil {
		return []types.Document{types.NewErrorDocument(fh.Filename, fmt.Sprintf("failed to open upload: %v", err))}
	}
	defer file.Close()

	content, err := h.readUpload(file, fh)
	if err != nil {
		return []types.Document{types.NewErrorDocument(fh.Filename, err.Error())}
	}

	if _, err := h.fileService.Save(fh.Filename, content); err != nil {
		log.Printf("Warning: failed to persist upload %s: %v", fh.Filename, err)
	}
	return h.dispatchService.Process(fh.Filename, content)
}

func (h *UploadHandler) readUpload(file multipart.File, fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.maxUploadSize {
		return nil, fmt.Errorf("file too large: %d bytes (limit %d)", fh.Size, h.maxUploadSize)
	}
	content, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %v", err)
	}
	if int64(len(content)) > h.maxUploadSize {
		return nil, fmt.Errorf("file too large (limit %d)", h.maxUploadSize)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return content, nil
}

func (h *UploadHandler) sendError(c *gin.Context, status int, message string) {
	c.JSON(status, types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
