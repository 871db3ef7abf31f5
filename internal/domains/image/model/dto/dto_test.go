package dto_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/image/model/dto"
	"hotel/shared/failure"
)

func TestUploadBase64Request_ToFiles(t *testing.T) {
	req := dto.UploadBase64Request{Files: []string{
		"data:image/png;base64,aGVsbG8=",
		"data:image/jpeg;base64,d29ybGQh",
	}}

	files, err := req.ToFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "image-1.png", files[0].Name)
	assert.Equal(t, "image/png", files[0].ContentType)
	assert.Equal(t, int64(5), files[0].Size)

	content, err := io.ReadAll(files[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	assert.Equal(t, "image-2.jpg", files[1].Name)
	assert.Equal(t, int64(6), files[1].Size)

	req.Files = append(req.Files, "not a data url")

	_, err = req.ToFiles()
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.ErrorContains(t, err, "files[2]")
}
