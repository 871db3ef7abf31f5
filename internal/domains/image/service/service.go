package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/image/model"
	"hotel/internal/domains/image/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const bytesPerMB = 1024 * 1024

// Image stores room pictures in object storage.
type Image interface {
	Upload(ctx context.Context, files []dto.File) (dto.UploadResponse, error)
	Delete(ctx context.Context, url string) error
}

type serviceImpl struct {
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel
}

func New(s3 s3.S3, cfg *config.Config, otel otel.Otel) Image {
	return &serviceImpl{
		s3:   s3,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) folder() string {
	if s.cfg.App.Image.Folder != "" {
		return s.cfg.App.Image.Folder
	}

	return model.DefaultFolder
}

func (s *serviceImpl) maxSizeMB() int {
	if s.cfg.App.Image.MaxSizeMB > 0 {
		return s.cfg.App.Image.MaxSizeMB
	}

	return model.DefaultMaxSizeMB
}

func (s *serviceImpl) extensions() []string {
	if len(s.cfg.App.Image.AllowedExtensions) > 0 {
		return s.cfg.App.Image.AllowedExtensions
	}

	return model.DefaultExtensions
}

func (s *serviceImpl) check(file dto.File) error {
	if file.Size == 0 {
		return failure.BadRequestFromString("file " + file.Name + " is empty") //nolint:wrapcheck
	}

	if limit := s.maxSizeMB(); file.Size > int64(limit)*bytesPerMB {
		return failure.BadRequestFromString(fmt.Sprintf("file size exceeds the limit of %dMB", limit)) //nolint:wrapcheck
	}

	allowed := s.extensions()

	ext := strings.ToLower(filepath.Ext(file.Name))
	if !slices.Contains(allowed, ext) {
		return failure.BadRequestFromString(fmt.Sprintf("file type %s is not allowed. Allowed types: %s", ext, strings.Join(allowed, ", "))) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) store(ctx context.Context, file dto.File) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Name))

	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}

	url, err := s.s3.Upload(ctx, s.folder(), uuid.NewString()+ext, contentType, file.Content)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file.Name, err)
	}

	return url, nil
}

// Upload rejects a single invalid file outright. In a batch, files that fail are
// skipped and the rest are still stored.
func (s *serviceImpl) Upload(ctx context.Context, files []dto.File) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(files) == 0 {
		return res, failure.BadRequestFromString("no files uploaded") //nolint:wrapcheck
	}

	res.URLs = []string{}

	if len(files) == 1 {
		if err = s.check(files[0]); err != nil {
			return res, err
		}

		url, err := s.store(ctx, files[0])
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image")

			return res, err
		}

		res.URLs = append(res.URLs, url)

		return res, nil
	}

	for _, file := range files {
		if err := s.check(file); err != nil {
			log.Warn().Err(err).Str("file", file.Name).Msg("skipping invalid image")

			continue
		}

		url, err := s.store(ctx, file)
		if err != nil {
			log.Error().Err(err).Str("file", file.Name).Msg("failed to upload image, skipping")

			continue
		}

		res.URLs = append(res.URLs, url)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if url == "" {
		return failure.BadRequestFromString("no image url provided") //nolint:wrapcheck
	}

	key := s.s3.ObjectKeyFromURL(url)
	if key == "" {
		return failure.NotFound("image not found") //nolint:wrapcheck
	}

	if err = s.s3.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete image")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
