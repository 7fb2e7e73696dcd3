package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"mockgram/internal/entity"
	"mockgram/internal/repo/persistent"
	"mockgram/internal/store"
	"mockgram/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The media type routes are thin enough to test against the real store.
func setupMediaTypeRouter(t *testing.T) *gin.Engine {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	assert.NoError(t, err)

	handler := NewMediaTypeHandler(usecase.NewMediaTypeUseCase(persistent.NewMediaTypeRepository(st)))

	router := setupTestRouter()
	router.GET("/mediaTypes", handler.List)
	router.POST("/mediaTypes", handler.Create)
	router.GET("/mediaTypes/:id", handler.Get)
	router.PUT("/mediaTypes/:id", handler.Update)
	router.DELETE("/mediaTypes/:id", handler.Delete)
	return router
}

func createMediaType(t *testing.T, router *gin.Engine, name string) entity.MediaType {
	t.Helper()
	body, _ := json.Marshal(gin.H{"name": name})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/mediaTypes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var mt entity.MediaType
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &mt))
	return mt
}

func TestMediaTypeCRUD(t *testing.T) {
	router := setupMediaTypeRouter(t)

	created := createMediaType(t, router, "image")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "image", created.Name)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/mediaTypes/%d", created.ID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	body, _ := json.Marshal(gin.H{"name": "video"})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", fmt.Sprintf("/mediaTypes/%d", created.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "video")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/mediaTypes/%d", created.ID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", fmt.Sprintf("/mediaTypes/%d", created.ID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMediaType_MissingName(t *testing.T) {
	router := setupMediaTypeRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/mediaTypes", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMediaTypes(t *testing.T) {
	router := setupMediaTypeRouter(t)
	createMediaType(t, router, "image")
	createMediaType(t, router, "gif")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/mediaTypes", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var list []entity.MediaType
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}
