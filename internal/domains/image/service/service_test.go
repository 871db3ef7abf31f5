package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	"hotel/internal/domains/image/model/dto"
	"hotel/internal/domains/image/service"
	"hotel/shared/failure"
)

func file(name string, size int64) dto.File {
	return dto.File{Name: name, Size: size, Content: strings.NewReader("image bytes")}
}

func TestImageService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockS3 := s3Mocks.NewMockS3(ctrl)
	svc := service.New(mockS3, &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name      string
		files     []dto.File
		setupMock func()
		want      []string
		code      int
	}{
		{
			name:  "single image",
			files: []dto.File{file("Lobby.PNG", 1024)},
			setupMock: func() {
				mockS3.EXPECT().
					Upload(gomock.Any(), "rooms", gomock.Any(), "image/png", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, name, _ string, _ io.Reader) (string, error) {
						assert.True(t, strings.HasSuffix(name, ".png"))

						return "https://cdn.example.com/rooms/" + name, nil
					})
			},
		},
		{
			name:  "single file with bad extension",
			files: []dto.File{file("notes.txt", 10)},
			code:  http.StatusBadRequest,
		},
		{
			name:  "single file too large",
			files: []dto.File{file("big.jpg", 6*1024*1024)},
			code:  http.StatusBadRequest,
		},
		{
			name:  "single upload failure",
			files: []dto.File{file("room.jpg", 10)},
			setupMock: func() {
				mockS3.EXPECT().
					Upload(gomock.Any(), "rooms", gomock.Any(), "image/jpeg", gomock.Any()).
					Return("", errors.New("bucket unreachable"))
			},
			code: http.StatusInternalServerError,
		},
		{
			name:  "batch skips invalid files",
			files: []dto.File{file("a.jpg", 10), file("b.bmp", 10), file("c.gif", 0), file("d.gif", 10)},
			setupMock: func() {
				mockS3.EXPECT().
					Upload(gomock.Any(), "rooms", gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/rooms/a.jpg", nil)
				mockS3.EXPECT().
					Upload(gomock.Any(), "rooms", gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/rooms/d.gif", nil)
			},
			want: []string{"https://cdn.example.com/rooms/a.jpg", "https://cdn.example.com/rooms/d.gif"},
		},
		{
			name:  "batch skips failed uploads",
			files: []dto.File{file("a.jpg", 10), file("b.jpg", 10)},
			setupMock: func() {
				mockS3.EXPECT().
					Upload(gomock.Any(), "rooms", gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("timeout"))
				mockS3.EXPECT().
					Upload(gomock.Any(), "rooms", gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/rooms/b.jpg", nil)
			},
			want: []string{"https://cdn.example.com/rooms/b.jpg"},
		},
		{
			name: "no files",
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			res, err := svc.Upload(context.Background(), tt.files)

			if tt.code != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			if tt.want != nil {
				assert.Equal(t, tt.want, res.URLs)
			} else {
				assert.Len(t, res.URLs, len(tt.files))
			}
		})
	}
}

func TestImageService_UploadUsesConfiguredLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.App.Image.Folder = "gallery"
	cfg.App.Image.MaxSizeMB = 1
	cfg.App.Image.AllowedExtensions = []string{".webp"}

	svc := service.New(mockS3, cfg, mocks.NewOtel())

	_, err := svc.Upload(context.Background(), []dto.File{file("photo.jpg", 10)})
	assert.ErrorContains(t, err, "file type .jpg is not allowed. Allowed types: .webp")

	_, err = svc.Upload(context.Background(), []dto.File{file("photo.webp", 2*1024*1024)})
	assert.ErrorContains(t, err, "file size exceeds the limit of 1MB")

	mockS3.EXPECT().
		Upload(gomock.Any(), "gallery", gomock.Any(), gomock.Any(), gomock.Any()).
		Return("https://cdn.example.com/gallery/photo.webp", nil)

	res, err := svc.Upload(context.Background(), []dto.File{file("photo.webp", 10)})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/gallery/photo.webp"}, res.URLs)
}

func TestImageService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockS3 := s3Mocks.NewMockS3(ctrl)
	svc := service.New(mockS3, &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name      string
		url       string
		setupMock func()
		code      int
	}{
		{
			name: "deleted",
			url:  "https://cdn.example.com/rooms/a.jpg",
			setupMock: func() {
				mockS3.EXPECT().ObjectKeyFromURL("https://cdn.example.com/rooms/a.jpg").Return("rooms/a.jpg")
				mockS3.EXPECT().Delete(gomock.Any(), "rooms/a.jpg").Return(nil)
			},
		},
		{
			name: "empty url",
			code: http.StatusBadRequest,
		},
		{
			name: "foreign url",
			url:  "https://elsewhere.example.com/a.jpg",
			setupMock: func() {
				mockS3.EXPECT().ObjectKeyFromURL(gomock.Any()).Return("")
			},
			code: http.StatusNotFound,
		},
		{
			name: "storage failure",
			url:  "https://cdn.example.com/rooms/a.jpg",
			setupMock: func() {
				mockS3.EXPECT().ObjectKeyFromURL(gomock.Any()).Return("rooms/a.jpg")
				mockS3.EXPECT().Delete(gomock.Any(), "rooms/a.jpg").Return(errors.New("denied"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			err := svc.Delete(context.Background(), tt.url)

			if tt.code == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}
