package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rayspace/blog-service/internal/dto"
)

func (h *Handler) adminPostsList(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	posts, err := h.services.Post.AdminList(c.Request.Context(), principal)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) adminPostsOrphans(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	orphans, err := h.services.Post.FindOrphans(c.Request.Context(), principal)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, orphans)
}

func (h *Handler) adminPostsMismatched(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	mismatches, err := h.services.Post.FindTitleMismatches(c.Request.Context(), principal)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mismatches)
}

func (h *Handler) adminPostsCreate(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) adminPostsUpdate(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		return
	}

	if err := h.services.Post.Update(c.Request.Context(), principal, postID, input); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post updated"))
}

func (h *Handler) adminPostsDelete(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), principal, postID); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted"))
}
