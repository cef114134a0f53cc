package handler

import (
	"github.com/acebook/feed-service/internal/model"
	"github.com/acebook/feed-service/internal/service"
	"github.com/acebook/feed-service/pkg/jwtoken"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
	tokens   *jwtoken.Manager
}

func New(services *service.Service, tokens *jwtoken.Manager) *Handler {
	return &Handler{
		services: services,
		tokens:   tokens,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowCredentials: true,
	}))

	r.POST("/users", h.usersSignup)
	r.POST("/tokens", h.tokensCreate)

	posts := r.Group("/posts", h.authMiddleware, h.identifyMiddleware)
	{
		posts.GET("", h.postsIndex)
		posts.POST("", h.postsCreate)
		posts.POST("/:postID/likes", h.postsLike)
		posts.DELETE("/:postID/likes", h.postsUnlike)
		posts.POST("/:postID/comments", h.postsComment)
	}

	// The user-update routes resolve the actor themselves so a structurally
	// broken token subject maps to 400 rather than 404.
	userUpdates := r.Group("/userUpdatesRoute", h.authMiddleware)
	{
		userUpdates.PUT("", h.usersUpdate)
		userUpdates.DELETE("", h.usersDelete)
	}

	return r
}

func (h *Handler) getClaimsFromRequest(c *gin.Context) *jwtoken.Claims {
	claimsValue, _ := c.Get(claimsCtxKey)

	claims, ok := claimsValue.(*jwtoken.Claims)
	if !ok {
		return nil
	}

	return claims
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userValue, _ := c.Get(userCtxKey)

	user, ok := userValue.(*model.User)
	if !ok {
		return nil
	}

	return user
}

// refreshToken reissues the presented token so its issued-at strictly
// exceeds the old one. Returns "" on signing failure; callers still serve
// the response rather than failing the whole request.
func (h *Handler) refreshToken(c *gin.Context) string {
	claims := h.getClaimsFromRequest(c)
	if claims == nil {
		return ""
	}

	token, err := h.tokens.Refresh(claims.UserID, claims.IssuedAt)
	if err != nil {
		return ""
	}

	return token
}
