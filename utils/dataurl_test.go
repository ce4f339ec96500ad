package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestDataURLRoundTrip(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	dataURL := EncodeJPEGDataURL(raw)
	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Fatalf("EncodeJPEGDataURL() = %q", dataURL)
	}

	decoded, err := DecodeImageDataURL(dataURL)
	if err != nil {
		t.Fatalf("DecodeImageDataURL() error = %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Errorf("round trip mismatch: %v != %v", decoded, raw)
	}
}

func TestDecodeImageDataURLRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a data url", "https://example.com/photo.jpg"},
		{"wrong media type", "data:text/plain;base64,aGVsbG8="},
		{"missing base64 marker", "data:image/jpeg,rawbytes"},
		{"invalid payload", "data:image/jpeg;base64,!!!not-base64!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeImageDataURL(tt.input); err == nil {
				t.Errorf("DecodeImageDataURL(%q) accepted bad input", tt.input)
			}
		})
	}
}
