package media

import (
	"path/filepath"
	"strings"
)

// imageMIMETypes maps supported photo extensions to their MIME types.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// SourceImage is a photo discovered under a configured source directory.
// Sources are never mutated or deleted; the pipeline only reads and copies.
type SourceImage struct {
	// Path is the absolute path to the file.
	Path string
	// Folder is the name of the directory containing the file, used as a
	// semantic label on every result derived from it.
	Folder string
	// Filename is the base name of the file.
	Filename string
	// MIMEType is derived from the file extension.
	MIMEType string
}

// IsImagePath reports whether path carries a supported photo extension.
func IsImagePath(path string) bool {
	_, ok := imageMIMETypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// MIMEType returns the MIME type for path, or an empty string when the
// extension is not a supported photo format.
func MIMEType(path string) string {
	return imageMIMETypes[strings.ToLower(filepath.Ext(path))]
}
