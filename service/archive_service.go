package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ArchiveEntry is one extractable file pulled out of a ZIP upload.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// ArchiveService expands ZIP uploads one level deep.
type ArchiveService struct{}

func NewArchiveService() *ArchiveService {
	return &ArchiveService{}
}

// Expand lists the archive and returns the entries the dispatcher can act
// on. Directories and unsupported extensions are skipped silently; nested
// archives are kept so the dispatcher can surface them as unsupported
// instead of dropping them without trace.
func (s *ArchiveService) Expand(data []byte) ([]ArchiveEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid zip archive: %w", err)
	}

	var entries []ArchiveEntry
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !SupportedExtension(name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read archive entry %s: %w", f.Name, err)
		}
		entries = append(entries, ArchiveEntry{Name: name, Data: content})
	}
	return entries, nil
}
