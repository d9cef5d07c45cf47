// internal/domain/upload/entity.go
package upload

import (
	"path/filepath"
	"regexp"
	"strings"
)

// StoredImage describes an image written to the upload directory
type StoredImage struct {
	Name         string `json:"name"`          // generated file name, unique
	OriginalName string `json:"original_name"` // as sent by the browser
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces a client supplied file name to a safe base name
func SanitizeFilename(name string) string {
	// browsers on Windows may send a full path
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")

	if name == "" || name == "." {
		return "image"
	}
	if len(name) > 100 {
		ext := filepath.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:100-len(ext)] + ext
	}
	return name
}
