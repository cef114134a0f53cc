package handler

import (
	"errors"
	"net/http"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/acebook/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels onto the wire contract. Anything
// unexpected becomes a bare 500 without store detail.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyLiked), errors.Is(err, service.ErrBadActorID):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	c.JSON(status, dto.NewMessageResponse(err.Error()))
}
