package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeJPEGDataURL wraps raw JPEG bytes in a self-contained data URL
func EncodeJPEGDataURL(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeImageDataURL extracts the raw image bytes from a base64 data URL
func DecodeImageDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, fmt.Errorf("not an image data URL")
	}
	idx := strings.Index(dataURL, ",")
	if idx < 0 || !strings.HasSuffix(dataURL[:idx], ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding")
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return data, nil
}
