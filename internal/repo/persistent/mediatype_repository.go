package persistent

import (
	"mockgram/internal/entity"
	"mockgram/internal/store"
)

type MediaTypeRepository interface {
	Create(mt *entity.MediaType) error
	GetByID(id int64) (*entity.MediaType, error)
	List() ([]*entity.MediaType, error)
	Update(mt *entity.MediaType) error
	Delete(id int64) error
}

type mediaTypeRepository struct {
	store *store.Store
}

func NewMediaTypeRepository(s *store.Store) MediaTypeRepository {
	return &mediaTypeRepository{store: s}
}

func (r *mediaTypeRepository) Create(mt *entity.MediaType) error {
	if mt.ID == 0 {
		mt.ID = r.store.NextID()
	}
	return r.store.Update(func(doc *store.Document) error {
		doc.MediaTypes = append(doc.MediaTypes, *mt)
		return nil
	})
}

func (r *mediaTypeRepository) GetByID(id int64) (*entity.MediaType, error) {
	var found *entity.MediaType
	r.store.View(func(doc *store.Document) {
		for i := range doc.MediaTypes {
			if doc.MediaTypes[i].ID == id {
				m := doc.MediaTypes[i]
				found = &m
				return
			}
		}
	})
	if found == nil {
		return nil, entity.ErrMediaTypeNotFound
	}
	return found, nil
}

func (r *mediaTypeRepository) List() ([]*entity.MediaType, error) {
	var out []*entity.MediaType
	r.store.View(func(doc *store.Document) {
		out = make([]*entity.MediaType, len(doc.MediaTypes))
		for i := range doc.MediaTypes {
			m := doc.MediaTypes[i]
			out[i] = &m
		}
	})
	return out, nil
}

func (r *mediaTypeRepository) Update(mt *entity.MediaType) error {
	return r.store.Update(func(doc *store.Document) error {
		for i := range doc.MediaTypes {
			if doc.MediaTypes[i].ID == mt.ID {
				doc.MediaTypes[i] = *mt
				return nil
			}
		}
		return entity.ErrMediaTypeNotFound
	})
}

func (r *mediaTypeRepository) Delete(id int64) error {
	return r.store.Update(func(doc *store.Document) error {
		for i := range doc.MediaTypes {
			if doc.MediaTypes[i].ID == id {
				doc.MediaTypes = append(doc.MediaTypes[:i], doc.MediaTypes[i+1:]...)
				return nil
			}
		}
		return entity.ErrMediaTypeNotFound
	})
}
