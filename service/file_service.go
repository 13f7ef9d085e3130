package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tieubaoca/docextract-be/utils"
)

// FileService keeps the original bytes of each upload under uploadDir with a
// sanitized, timestamped name so the stored document can be served back later.
type FileService struct {
	uploadDir string
}

func NewFileService(uploadDir string) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &FileService{uploadDir: uploadDir}, nil
}

// Save writes the upload to disk and returns the stored filename.
func (s *FileService) Save(originalName string, content []byte) (string, error) {
	name := utils.SanitizeFileName(utils.TimestampedName(originalName))
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), content, 0644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// Resolve maps a requested original name to its stored timestamped file.
func (s *FileService) Resolve(requestedName string) (string, error) {
	files, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return "", err
	}

	requestedName = utils.SanitizeFileName(requestedName)
	ext := filepath.Ext(requestedName)
	baseName := strings.TrimSuffix(requestedName, ext)
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ext) {
			continue
		}

		nameWithoutExt := strings.TrimSuffix(name, ext)
		if nameWithoutExt == baseName {
			return filepath.Join(s.uploadDir, name), nil
		}
		lastUnderscoreIdx := strings.LastIndex(nameWithoutExt, "_")
		if lastUnderscoreIdx == -1 {
			continue
		}

		// Unix timestamps are 10 (seconds) or 13 (millis) digits.
		timestampPart := nameWithoutExt[lastUnderscoreIdx+1:]
		fileBaseName := nameWithoutExt[:lastUnderscoreIdx]
		if len(timestampPart) == 10 || len(timestampPart) == 13 {
			if _, err := strconv.ParseInt(timestampPart, 10, 64); err == nil {
				if fileBaseName == baseName {
					return filepath.Join(s.uploadDir, name), nil
				}
			}
		}
	}

	return "", fmt.Errorf("file not found: %s", requestedName)
}
