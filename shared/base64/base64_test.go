package base64_test

import (
	"testing"

	"hotel/shared/base64"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloWorld = "data:text/plain;base64,SGVsbG8gV29ybGQ="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "png data url",
			input:    "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg==",
			expected: "image/png",
		},
		{
			name:     "plain text data url",
			input:    helloWorld,
			expected: "text/plain",
		},
		{
			name:     "missing base64 marker",
			input:    "data:image/png,abc",
			expected: "",
		},
		{
			name:     "not a data url",
			input:    "https://cdn.example.com/rooms/a.png",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	data, contentType, err := base64.Decode(helloWorld)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "Hello World", string(data))

	_, _, err = base64.Decode("not-a-data-url")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURL)

	_, _, err = base64.Decode("data:text/plain;base64,@@@")
	assert.Error(t, err)
}

func TestDecodedSize(t *testing.T) {
	assert.Equal(t, len("Hello World"), base64.DecodedSize(helloWorld))
}
