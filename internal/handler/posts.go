package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rayspace/blog-service/internal/dto"
)

func parsePostID(c *gin.Context) (int64, bool) {
	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID))
		return 0, false
	}

	return postID, true
}

func (h *Handler) postsList(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetContent(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	content, err := h.services.Post.Get(c.Request.Context(), postID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostContent{Content: content})
}

func (h *Handler) postsUpdateViews(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.services.Post.IncrementViews(c.Request.Context(), postID); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
