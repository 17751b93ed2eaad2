package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rayspace/blog-service/internal/dto"
	"github.com/rayspace/blog-service/internal/service"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		return
	}

	createdComment, err := h.services.Comment.Append(c.Request.Context(), principal, input.Comment)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdComment)
}

func (h *Handler) commentsGet(c *gin.Context) {
	limit := service.MAX_COMMENTS_LIMIT
	if limitString := c.Query("limit"); limitString != "" {
		var err error
		limit, err = strconv.Atoi(limitString)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errLimitMustBeInt))
			return
		}
	}

	comments, err := h.services.Comment.Recent(c.Request.Context(), limit)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
