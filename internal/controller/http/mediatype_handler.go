package http

import (
	"net/http"

	"mockgram/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MediaTypeHandler struct {
	mediaTypeUseCase usecase.MediaTypeUseCase
}

func NewMediaTypeHandler(mediaTypeUseCase usecase.MediaTypeUseCase) *MediaTypeHandler {
	return &MediaTypeHandler{mediaTypeUseCase: mediaTypeUseCase}
}

type MediaTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *MediaTypeHandler) List(c *gin.Context) {
	mediaTypes, err := h.mediaTypeUseCase.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mediaTypes)
}

func (h *MediaTypeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Media type not found"})
		return
	}

	mt, err := h.mediaTypeUseCase.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mt)
}

func (h *MediaTypeHandler) Create(c *gin.Context) {
	var req MediaTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	mt, err := h.mediaTypeUseCase.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mt)
}

func (h *MediaTypeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Media type not found"})
		return
	}

	var req MediaTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	mt, err := h.mediaTypeUseCase.Update(id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mt)
}

func (h *MediaTypeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Media type not found"})
		return
	}

	if err := h.mediaTypeUseCase.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media type deleted successfully"})
}
