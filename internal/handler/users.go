package handler

import (
	"net/http"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) usersSignup(c *gin.Context) {
	var input dto.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
		return
	}

	user, err := h.services.User.Register(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{User: user})
}

func (h *Handler) tokensCreate(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
		return
	}

	user, err := h.services.User.Login(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

func (h *Handler) usersUpdate(c *gin.Context) {
	claims := h.getClaimsFromRequest(c)

	var input dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
		return
	}

	if err := h.services.User.Update(c.Request.Context(), claims.UserID, input); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "User updated successfully",
		Token:   h.refreshToken(c),
	})
}

func (h *Handler) usersDelete(c *gin.Context) {
	claims := h.getClaimsFromRequest(c)

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse("Bad request"))
		return
	}

	if err := h.services.User.Delete(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	// No token on account deletion: there is no user left to act for.
	c.JSON(http.StatusOK, dto.NewMessageResponse("User deleted successfully"))
}
