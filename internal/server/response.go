package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/services"
	"github.com/julianstephens/quickhire/internal/validation"
)

const (
	codeInvalidInput = "invalid_input"
	codeNotFound     = "not_found"
	codeInternal     = "internal"
)

type APIError struct {
	Message string                  `json:"message"`
	Code    string                  `json:"code,omitempty"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	body := ErrorEnvelope{Error: APIError{Message: msg, Code: code}}
	var fields validation.Errors
	if errors.As(err, &fields) {
		body.Error.Fields = fields
	}
	c.AbortWithStatusJSON(status, body)
}

// fail maps service errors onto HTTP statuses. Internal error text is not exposed.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		respondError(c, http.StatusBadRequest, codeInvalidInput, err)
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, err)
	default:
		logger.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, codeInternal, errors.New("internal server error"))
	}
}

func badRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, codeInvalidInput, err)
}
