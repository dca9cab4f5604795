package docimage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURL decodes a base64 image data URL ("data:image/png;base64,...")
// into raw bytes plus the gofpdf image type. Only PNG and JPEG payloads are
// supported; anything else is rejected rather than guessed at.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	dataURL = strings.TrimSpace(dataURL)
	if dataURL == "" {
		return nil, "", fmt.Errorf("empty data url")
	}
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, "", fmt.Errorf("not a data url")
	}

	meta, payload, ok := strings.Cut(dataURL[len("data:"):], ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data url")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("unsupported data url encoding %q", meta)
	}

	var imageType string
	switch strings.TrimSuffix(meta, ";base64") {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	default:
		return nil, "", fmt.Errorf("unsupported image mime %q", meta)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image payload: %w", err)
	}
	return raw, imageType, nil
}
