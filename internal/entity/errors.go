package entity

import "errors"

// Domain errors. Handlers map these onto HTTP statuses; keeping the kinds
// distinct matters because the post guard reports the same status for a
// missing post and a foreign post.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrMediaTypeNotFound = errors.New("media type not found")

	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrUsernameTaken = errors.New("username already taken")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotOwner = errors.New("not the owner of this post")

	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")

	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not liked")

	ErrEmptyComment = errors.New("comment text is required")
)
