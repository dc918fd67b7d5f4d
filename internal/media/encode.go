package media

import (
	"encoding/base64"
	"fmt"
	"os"
)

// DefaultMaxEncodeBytes caps the raw size of a photo submitted to the remote
// API. OpenRouter rejects oversized payloads with an opaque error, so refuse
// them before spending a request.
const DefaultMaxEncodeBytes = 20 << 20

// EncodeDataURI reads the file at path and returns its contents as a base64
// data URI suitable for an image_url content part. maxBytes <= 0 applies
// DefaultMaxEncodeBytes.
func EncodeDataURI(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxEncodeBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > maxBytes {
		return "", fmt.Errorf("image %s is %d bytes, above the %d byte limit", path, info.Size(), maxBytes)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := MIMEType(path)
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
