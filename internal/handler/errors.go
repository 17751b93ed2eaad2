package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rayspace/blog-service/internal/dto"
	"github.com/rayspace/blog-service/internal/service"
)

var (
	errInvalidPostID    = errors.New("invalid post ID")
	errLimitMustBeInt   = errors.New("limit must be int")
	errMissingOAuthCode = errors.New("missing oauth code")
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := statusFromError(err)
	details := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, service.ErrInternal) {
		details = service.ErrInternal.Error()
	}

	c.JSON(status, dto.NewBasicResponse(false, details))
}
