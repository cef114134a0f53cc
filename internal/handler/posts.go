package handler

import (
	"net/http"
	"strings"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/acebook/feed-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) postsIndex(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{
		Posts: posts,
		Token: h.refreshToken(c),
	})
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PostResponse{
		Post:  createdPost,
		Token: h.refreshToken(c),
	})
}

func (h *Handler) postsLike(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := postIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	post, err := h.services.Post.AddLike(c.Request.Context(), postID, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PostResponse{
		Post:  post,
		Token: h.refreshToken(c),
	})
}

func (h *Handler) postsUnlike(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := postIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	post, err := h.services.Post.RemoveLike(c.Request.Context(), postID, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PostResponse{
		Post:  post,
		Token: h.refreshToken(c),
	})
}

func (h *Handler) postsComment(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
		return
	}

	post, err := h.services.Post.AddComment(c.Request.Context(), postID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PostResponse{
		Post:  post,
		Token: h.refreshToken(c),
	})
}

// postIDParam treats a malformed post id the same as a missing post: the
// referenced resource cannot exist.
func postIDParam(c *gin.Context) (uuid.UUID, error) {
	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		return uuid.Nil, service.ErrPostNotFound
	}
	return postID, nil
}
