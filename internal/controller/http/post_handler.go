package http

import (
	"net/http"

	"mockgram/internal/usecase"
	"mockgram/pkg/logger"
	"mockgram/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, m *metrics.Metrics, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		metrics:     m,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	UserID  *int64 `json:"userId" binding:"required"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type CommentRequest struct {
	UserID  *int64 `json:"userId" binding:"required"`
	Comment string `json:"comment"`
}

// ListPosts godoc
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  entity.Post
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	post, err := h.postUseCase.GetPost(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(*req.UserID, req.Content, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Merges the supplied fields into the post; the ownership guard runs first
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var update usecase.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.postUseCase.UpdatePost(id, update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// DeletePost godoc
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if err := h.postUseCase.DeletePost(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// Like godoc
// @Summary      Like a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body actorBody true "Acting user"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	h.react(c, "Post liked successfully", h.postUseCase.Like)
}

// Unlike godoc
// @Summary      Remove a like from a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body actorBody true "Acting user"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/unlike [post]
func (h *PostHandler) Unlike(c *gin.Context) {
	h.react(c, "Post unliked successfully", h.postUseCase.Unlike)
}

func (h *PostHandler) react(c *gin.Context, message string, apply func(int64, int64) error) {
	postID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var body actorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	if err := apply(postID, *body.UserID); err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.LikeRequests.WithLabelValues(c.FullPath()).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body CommentRequest true "Comment data"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	comment, err := h.postUseCase.AddComment(postID, *req.UserID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
