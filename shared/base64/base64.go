package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURL = errors.New("invalid data url")

// GetContentType returns the media type of a data URL such as
// "data:image/png;base64,iVBOR...", or an empty string when the input is not one.
func GetContentType(file string) string {
	if !strings.HasPrefix(file, dataPrefix) {
		return ""
	}

	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode returns the payload and media type of a base64 data URL.
func Decode(file string) ([]byte, string, error) {
	contentType := GetContentType(file)
	if contentType == "" {
		return nil, "", ErrInvalidDataURL
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err := stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return data, contentType, nil
}

// DecodedSize estimates the decoded byte length of a data URL payload without decoding it.
func DecodedSize(file string) int {
	idx := strings.Index(file, base64Marker)
	if idx == -1 {
		return len(file)
	}

	payload := file[idx+len(base64Marker):]

	return stdBase64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload[max(0, len(payload)-2):], "=")
}
