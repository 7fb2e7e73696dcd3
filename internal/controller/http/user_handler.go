package http

import (
	"net/http"
	"os"
	"path/filepath"

	"mockgram/internal/entity"
	"mockgram/internal/usecase"
	"mockgram/pkg/logger"
	"mockgram/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, m *metrics.Metrics, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		metrics:     m,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type actorBody struct {
	UserID *int64 `json:"userId" binding:"required"`
}

// Register godoc
// @Summary      Create a new user
// @Description  Create a user with a unique username and email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.userUseCase.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      Log a user in
// @Description  Plaintext credential check; returns the matched user
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	user, exists := c.Get(contextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, user.(*entity.User))
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  entity.User
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUseCase.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	user, err := h.userUseCase.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser merges the supplied fields into the user record.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var update usecase.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.userUseCase.UpdateUser(id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Follow godoc
// @Summary      Follow a user
// @Description  Adds the acting user to the target's followers
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "Target user ID"
// @Param        request body actorBody true "Acting user"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	targetID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var body actorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	if err := h.userUseCase.Follow(targetID, *body.UserID); err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.FollowRequests.WithLabelValues(c.FullPath()).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "Target user ID"
// @Param        request body actorBody true "Acting user"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/unfollow [post]
func (h *UserHandler) Unfollow(c *gin.Context) {
	targetID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var body actorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	if err := h.userUseCase.Unfollow(targetID, *body.UserID); err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UnfollowRequests.WithLabelValues(c.FullPath()).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}

// UpdateProfilePicture godoc
// @Summary      Upload a profile picture
// @Description  Resizes the uploaded image to 200x200 (cover fit) and stores it in the cloud bucket
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "User ID"
// @Param        profilePicture formData file true "Image file"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id}/updateProfilePicture [post]
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	h.updatePicture(c, "profilePicture", h.userUseCase.UpdateProfilePicture)
}

// UpdateBannerPicture godoc
// @Summary      Upload a banner picture
// @Description  Resizes the uploaded image to 1200x400 (cover fit) and stores it in the cloud bucket
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "User ID"
// @Param        bannerPicture formData file true "Image file"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id}/updateBannerPicture [post]
func (h *UserHandler) UpdateBannerPicture(c *gin.Context) {
	h.updatePicture(c, "bannerPicture", h.userUseCase.UpdateBannerPicture)
}

func (h *UserHandler) updatePicture(c *gin.Context, field string, apply func(int64, string) (*entity.User, error)) {
	userID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	file, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A file is required"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.logger.Error("Failed to save uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	// The temp file is gone once the request finishes, whatever happened.
	defer os.Remove(tmpPath)

	user, err := apply(userID, tmpPath)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PictureUploads.WithLabelValues(c.FullPath()).Inc()
	}
	c.JSON(http.StatusOK, user)
}
