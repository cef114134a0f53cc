package dto

import "github.com/acebook/feed-service/internal/model"

// MessageResponse is the shape of every error body and of bare success
// acknowledgements: a single human-readable message. Error responses never
// carry a token.
type MessageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

type TokenResponse struct {
	Token string `json:"token"`
}

type PostResponse struct {
	Post  *model.Post `json:"post"`
	Token string      `json:"token"`
}

type PostsResponse struct {
	Posts []*model.Post `json:"posts"`
	Token string        `json:"token"`
}

type UserResponse struct {
	User *model.User `json:"user"`
}
