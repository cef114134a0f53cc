package service

import "errors"

// Sentinel errors double as the user-visible message strings, so handlers
// can write err.Error() straight into the response body.
var (
	ErrInternal           = errors.New("internal server error")
	ErrUserNotFound       = errors.New("User not found")
	ErrPostNotFound       = errors.New("Post not found")
	ErrAlreadyLiked       = errors.New("You've already liked this post.")
	ErrBadActorID         = errors.New("Bad request")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
