// Package handler contains the HTTP handlers of the box API.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/hapkiduki/boxopt/internal/application/dto"
	"github.com/hapkiduki/boxopt/internal/application/port"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/middleware"
)

// errBadQuery marks a malformed query parameter other than the volume.
var errBadQuery = errors.New("bad query parameter")

// respond writes data inside a success envelope.
func respond[T any](w http.ResponseWriter, r *http.Request, status int, version string, data T) {
	resp := dto.NewSuccessResponse(data).WithMeta(middleware.GetRequestID(r.Context()), version, time.Now())
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// fail maps err to a status and error code and writes the error envelope.
func fail(w http.ResponseWriter, r *http.Request, version string, err error) {
	status, code := http.StatusInternalServerError, dto.CodeInternal
	message := "An unexpected error occurred"
	var details map[string]any

	switch {
	case valueobject.IsInvalidInput(err):
		status, code, message = http.StatusBadRequest, dto.CodeInvalidInput, err.Error()
		details = map[string]any{"field": "volume"}
	case errors.Is(err, port.ErrUnsupportedFormat):
		status, code, message = http.StatusBadRequest, dto.CodeUnsupportedFormat, err.Error()
	case errors.Is(err, errBadQuery), errors.Is(err, dto.ErrVolumeType):
		status, code, message = http.StatusBadRequest, dto.CodeBadRequest, err.Error()
	}

	resp := dto.NewErrorResponse[any](code, message).WithMeta(middleware.GetRequestID(r.Context()), version, time.Now())
	resp.Error.Details = details
	render.Status(r, status)
	render.JSON(w, r, resp)
}
