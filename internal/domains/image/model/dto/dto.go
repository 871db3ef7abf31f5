package dto

import (
	"bytes"
	"fmt"
	"io"

	"hotel/internal/domains/image/model"
	"hotel/shared/base64"
	"hotel/shared/failure"
)

// File is one uploaded image, independent of how it reached the server.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadBase64Request uploads images sent as data URLs.
type UploadBase64Request struct {
	Files []string `json:"files" validate:"required,min=1"`
}

func (r *UploadBase64Request) ToFiles() ([]File, error) {
	files := make([]File, 0, len(r.Files))

	for i, dataURL := range r.Files {
		data, contentType, err := base64.Decode(dataURL)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("files[%d] is not a valid base64 data url", i)) //nolint:wrapcheck
		}

		files = append(files, File{
			Name:        fmt.Sprintf("%s-%d%s", model.EntityName, i+1, model.ExtensionFor(contentType)),
			Size:        int64(len(data)),
			ContentType: contentType,
			Content:     bytes.NewReader(data),
		})
	}

	return files, nil
}

type UploadResponse struct {
	URLs []string `json:"urls"`
}
