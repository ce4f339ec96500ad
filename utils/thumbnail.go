package utils

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// GenerateThumbnail decodes a captured photo's data URL and re-encodes it as
// a small JPEG preview bounded by maxSize on the longest side
func GenerateThumbnail(photoDataURL string, maxSize int) ([]byte, error) {
	raw, err := DecodeImageDataURL(photoDataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo payload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
