package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docextract-be/service"
	"github.com/tieubaoca/docextract-be/types"
)

// DocumentHandler serves stored upload originals back to the caller.
type DocumentHandler struct {
	fileService *service.FileService
}

func NewDocumentHandler(fileService *service.FileService) *DocumentHandler {
	return &DocumentHandler{
		fileService: fileService,
	}
}

// ServeDocument streams a stored upload identified by its original name. Only
// extractable formats are served; the stored copy carries a timestamp suffix
// the file service resolves.
func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	requestedName := c.Query("file")
	if requestedName == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "file parameter is required",
		})
		return
	}

	if !service.SupportedExtension(requestedName) {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "unsupported file type",
		})
		return
	}

	path, err := h.fileService.Resolve(requestedName)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: "file not found",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", filepath.Base(requestedName)))
	c.File(path)
}
