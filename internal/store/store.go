package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mockgram/internal/entity"
)

// Document is the entire persisted database: one flat JSON file holding
// every collection.
type Document struct {
	Users      []entity.User      `json:"users"`
	Posts      []entity.Post      `json:"posts"`
	MediaTypes []entity.MediaType `json:"mediaTypes"`
}

// Store owns the document. Every read or mutation runs under the store
// mutex, and Update persists the whole document before releasing it, so a
// multi-record mutation (follow updates two user records) is a single
// transactional unit.
type Store struct {
	path string

	mu  sync.Mutex
	doc Document

	idMu   sync.Mutex
	lastID int64
}

func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.ensureCollections()
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	s.ensureCollections()

	// Never reuse an id already present in the document.
	for _, u := range s.doc.Users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}
	for _, p := range s.doc.Posts {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
		for _, c := range p.Comments {
			if c.ID > s.lastID {
				s.lastID = c.ID
			}
		}
	}
	for _, m := range s.doc.MediaTypes {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}

	return s, nil
}

// ensureCollections keeps the collections non-nil so the persisted
// document always carries arrays, never null.
func (s *Store) ensureCollections() {
	if s.doc.Users == nil {
		s.doc.Users = []entity.User{}
	}
	if s.doc.Posts == nil {
		s.doc.Posts = []entity.Post{}
	}
	if s.doc.MediaTypes == nil {
		s.doc.MediaTypes = []entity.MediaType{}
	}
}

// View runs fn with read access to the document. fn must not retain
// references past its return.
func (s *Store) View(fn func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.doc)
}

// Update runs fn with write access and persists the whole document if fn
// succeeds. If fn returns an error nothing is written.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.doc); err != nil {
		return err
	}
	return s.persist()
}

// NextID issues timestamp-derived ids (milliseconds) that are guaranteed
// to be strictly increasing even when two creations land on the same
// millisecond.
func (s *Store) NextID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	// Write to a temp file in the same directory and rename so a crash
	// mid-write cannot truncate the document.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
