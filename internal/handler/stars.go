package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rayspace/blog-service/internal/dto"
)

func (h *Handler) githubStars(c *gin.Context) {
	stars, err := h.services.Stars.Read(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Stars{Stars: stars})
}
