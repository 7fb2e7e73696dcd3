package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"mockgram/internal/usecase"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "user"

// peekBody reads the request body and puts it back so the next handler in
// the chain can bind it again.
func peekBody(c *gin.Context, out interface{}) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

type credentialsBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CheckUserExistence resolves the user named by email or username in the
// body and attaches it to the request context.
func CheckUserExistence(users usecase.UserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body credentialsBody
		if err := peekBody(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			c.Abort()
			return
		}

		user, err := users.FindByEmailOrUsername(body.Email, body.Username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// AuthenticateUser verifies the supplied password for the user named by
// email or username. Login is the only route using this guard.
func AuthenticateUser(users usecase.UserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body credentialsBody
		if err := peekBody(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			c.Abort()
			return
		}

		user, err := users.Authenticate(body.Email, body.Username, body.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CheckPostOwnership gates post update/delete: 400 when the body carries
// no userId, 403 both when the post does not exist and when it belongs to
// someone else. The usecase keeps those two causes distinct.
func CheckPostOwnership(posts usecase.PostUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			UserID *int64 `json:"userId"`
		}
		if err := peekBody(c, &body); err != nil || body.UserID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required to verify ownership"})
			c.Abort()
			return
		}

		postID, ok := pathID(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this post"})
			c.Abort()
			return
		}

		if err := posts.CheckOwnership(postID, *body.UserID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this post"})
			c.Abort()
			return
		}

		c.Next()
	}
}
