package image

import (
	"mime/multipart"
	"net/http"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/image/model/dto"
	"hotel/internal/domains/image/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Image
	otel    otel.Otel
}

func New(service service.Image, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/images", func(routerGroup chi.Router) {
		routerGroup.Post("/upload", handler.UploadImages)
		routerGroup.Delete("/", handler.DeleteImage)
	})
}

// UploadImages stores room images in S3.
// @Summary Upload room images
// @Description Accepts multipart files under "files" (or "file"), or a JSON body of base64 data URLs. A single invalid file fails the request; in a batch invalid files are skipped.
// @Tags Image
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param files formData file false "Image files"
// @Param request body dto.UploadBase64Request false "Base64 images"
// @Success 200 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/images/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImages")
	defer scope.End()

	var (
		files []dto.File
		err   error
	)

	if strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		files, err = formFiles(r)
	} else {
		req := dto.UploadBase64Request{}

		if err = validator.Validate(r.Body, &req); err == nil {
			files, err = req.ToFiles()
		}
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded images")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, files)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload images")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Images uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

func formFiles(r *http.Request) ([]dto.File, error) {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return nil, failure.BadRequestFromString("invalid multipart form") //nolint:wrapcheck
	}

	headers := r.MultipartForm.File[constant.FormFiles]
	if len(headers) == 0 {
		headers = r.MultipartForm.File[constant.FormFile]
	}

	files := make([]dto.File, 0, len(headers))

	for _, header := range headers {
		file, err := open(header)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}

func open(header *multipart.FileHeader) (dto.File, error) {
	content, err := header.Open()
	if err != nil {
		return dto.File{}, failure.BadRequestFromString("failed to read file " + header.Filename) //nolint:wrapcheck
	}

	return dto.File{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Content:     content,
	}, nil
}

// DeleteImage removes an image from S3.
// @Summary Delete a room image
// @Tags Image
// @Produce json
// @Param url query string true "Public image URL"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	url := r.URL.Query().Get(constant.RequestParamURL)

	if err := handler.service.Delete(ctx, url); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("url", url).Msg("failed to delete image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}
