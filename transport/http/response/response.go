package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

// BaseResponse is the envelope of every response. Success mirrors the status code.
type BaseResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

type Data[T any] struct {
	BaseResponse
	Data *T `json:"data,omitempty"`
}

type Error struct {
	BaseResponse
}

type Message struct {
	BaseResponse
}

func base(code int, message string) BaseResponse {
	return BaseResponse{
		Success: code < http.StatusBadRequest,
		Message: message,
		Errors:  []string{},
	}
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{BaseResponse: base(code, message)})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{BaseResponse: base(code, http.StatusText(code)), Data: &jsonPayload})
}

// WithError sends a response with an error message. Failures keep their own message
// and field errors; anything else is reported as is with a 500.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	res := Error{BaseResponse: base(code, err.Error())}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		res.Message = fail.Message
	}

	if errs := failure.GetErrors(err); len(errs) > 0 {
		res.Errors = errs
	}

	response(writer, code, res)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
