package service

import (
	"path/filepath"
	"strings"

	"github.com/tieubaoca/docextract-be/types"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
}

// DetectFormat maps a filename to its FormatTag. Detection is extension
// based and case-insensitive; empty content is never extractable and is
// tagged unsupported regardless of extension.
func DetectFormat(fileName string, content []byte) types.FormatTag {
	if len(content) == 0 {
		return types.FormatUnsupported
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case ext == ".pdf":
		return types.FormatPDF
	case ext == ".docx":
		return types.FormatDOCX
	case ext == ".xlsx":
		return types.FormatXLSX
	case ext == ".zip":
		return types.FormatZip
	case imageExtensions[ext]:
		return types.FormatImage
	default:
		return types.FormatUnsupported
	}
}

// SupportedExtension reports whether the filename's extension maps to a
// recognized format, zip included.
func SupportedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".pdf", ".docx", ".xlsx", ".zip":
		return true
	}
	return imageExtensions[ext]
}
