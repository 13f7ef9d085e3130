package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFileName replaces every character outside [a-zA-Z0-9-_.] so the
// name is safe as a filesystem path component.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// TimestampedName builds "basename_unixtimestamp.ext" from an original
// filename so repeated uploads of the same document never collide.
func TimestampedName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	return fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)
}
