package handler

import (
	"net/http"
	"strings"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/acebook/feed-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	claimsCtxKey = "token-claims"
	userCtxKey   = "user"

	tokenCookieName = "token"
)

// extractToken accepts the token from either carrier: the Authorization
// Bearer header or the "token" cookie. Every protected route takes both.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := c.Cookie(tokenCookieName)
	if err != nil {
		return ""
	}

	return cookie
}

// authMiddleware rejects requests without a valid, unexpired token. A 401
// response never carries a reissued token and downstream handlers never run.
func (h *Handler) authMiddleware(c *gin.Context) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("auth error"))
		c.Abort()
		return
	}

	claims, err := h.tokens.Decode(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("auth error"))
		c.Abort()
		return
	}

	c.Set(claimsCtxKey, claims)

	c.Next()
}

// identifyMiddleware resolves the token's subject to a live user record. A
// well-signed token whose user no longer exists is a different failure class
// than a missing or garbled token: 404 "User not found", not 401.
func (h *Handler) identifyMiddleware(c *gin.Context) {
	claims := h.getClaimsFromRequest(c)

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewMessageResponse(service.ErrUserNotFound.Error()))
		c.Abort()
		return
	}

	user, err := h.services.User.FindByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		c.Abort()
		return
	}

	c.Set(userCtxKey, user)

	c.Next()
}
