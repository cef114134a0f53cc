package dto

// CreatePostRequest deliberately carries no validation tags: an empty
// message is accepted and stored as-is.
type CreatePostRequest struct {
	Message string `json:"message"`
}

// CreateCommentRequest takes the author snapshot from the request body
// rather than forcing it to the authenticated actor.
type CreateCommentRequest struct {
	Comment string               `json:"comment" binding:"required"`
	Author  CommentAuthorPayload `json:"author" binding:"required"`
}

type CommentAuthorPayload struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
