package store

import (
	"os"
	"path/filepath"
	"testing"

	"mockgram/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)

	assert.NoError(t, err)
	assert.NotNil(t, s)

	s.View(func(doc *Document) {
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.Posts)
	})
}

func TestUpdate_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	assert.NoError(t, err)

	err = s.Update(func(doc *Document) error {
		doc.Users = append(doc.Users, entity.User{ID: 42, Username: "alice", Email: "alice@example.com"})
		return nil
	})
	assert.NoError(t, err)

	// File should exist and reload into an equal document
	_, err = os.Stat(path)
	assert.NoError(t, err)

	reloaded, err := Open(path)
	assert.NoError(t, err)

	reloaded.View(func(doc *Document) {
		assert.Len(t, doc.Users, 1)
		assert.Equal(t, "alice", doc.Users[0].Username)
	})
}

func TestPersist_EmptyCollectionsAsArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	assert.NoError(t, err)

	// Persist without ever touching a collection
	err = s.Update(func(doc *Document) error { return nil })
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"users": []`)
	assert.Contains(t, string(data), `"posts": []`)
	assert.Contains(t, string(data), `"mediaTypes": []`)
	assert.NotContains(t, string(data), "null")
}

func TestUpdate_ErrorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	assert.NoError(t, err)

	err = s.Update(func(doc *Document) error {
		doc.Users = append(doc.Users, entity.User{ID: 1})
		return os.ErrInvalid
	})
	assert.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNextID_Monotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	assert.NoError(t, err)

	seen := make(map[int64]bool)
	last := int64(0)
	for i := 0; i < 1000; i++ {
		id := s.NextID()
		assert.Greater(t, id, last)
		assert.False(t, seen[id])
		seen[id] = true
		last = id
	}
}

func TestNextID_SkipsExistingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	assert.NoError(t, err)

	future := s.NextID() + 1_000_000
	err = s.Update(func(doc *Document) error {
		doc.Posts = append(doc.Posts, entity.Post{ID: future, UserID: 1})
		return nil
	})
	assert.NoError(t, err)

	reloaded, err := Open(path)
	assert.NoError(t, err)
	assert.Greater(t, reloaded.NextID(), future)
}
