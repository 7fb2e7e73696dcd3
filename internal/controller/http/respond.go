package http

import (
	"errors"
	"net/http"
	"strconv"

	"mockgram/internal/entity"

	"github.com/gin-gonic/gin"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrPostNotFound),
		errors.Is(err, entity.ErrMediaTypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrUsernameTaken),
		errors.Is(err, entity.ErrAlreadyFollowing),
		errors.Is(err, entity.ErrNotFollowing),
		errors.Is(err, entity.ErrAlreadyLiked),
		errors.Is(err, entity.ErrNotLiked),
		errors.Is(err, entity.ErrEmptyComment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Something went wrong"
	}
	c.JSON(status, gin.H{"message": message})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
