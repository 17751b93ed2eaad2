package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rayspace/blog-service/internal/dto"
	"github.com/rayspace/blog-service/internal/service"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.session.Secure, true)
}

func (h *Handler) userStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewUserStatus(h.getPrincipalFromRequest(c)))
}

func (h *Handler) authLogin(c *gin.Context) {
	state := uuid.NewString()
	h.setCookie(c, oauthStateCookie, state, int(oauthStateTTL.Seconds()))

	c.Redirect(http.StatusFound, h.services.OAuth.AuthorizeURL(state))
}

func (h *Handler) authCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		h.abortWithError(c, service.ErrOAuthStateDenied)
		return
	}
	h.setCookie(c, oauthStateCookie, "", -1)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errMissingOAuthCode))
		return
	}

	identity, err := h.services.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	token, err := h.services.Auth.EncodeSession(*identity)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	maxAge := 0
	if h.session.TTL > 0 {
		maxAge = int(h.session.TTL.Seconds())
	}
	h.setCookie(c, h.session.CookieName, token, maxAge)

	c.Redirect(http.StatusFound, h.clientOrigin)
}

func (h *Handler) authLogout(c *gin.Context) {
	h.setCookie(c, h.session.CookieName, "", -1)

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "logged out"))
}
