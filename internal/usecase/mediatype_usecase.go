package usecase

import (
	"mockgram/internal/entity"
	"mockgram/internal/repo/persistent"
)

type MediaTypeUseCase interface {
	Create(name string) (*entity.MediaType, error)
	Get(id int64) (*entity.MediaType, error)
	List() ([]*entity.MediaType, error)
	Update(id int64, name string) (*entity.MediaType, error)
	Delete(id int64) error
}

type mediaTypeUseCase struct {
	repo persistent.MediaTypeRepository
}

func NewMediaTypeUseCase(repo persistent.MediaTypeRepository) MediaTypeUseCase {
	return &mediaTypeUseCase{repo: repo}
}

func (uc *mediaTypeUseCase) Create(name string) (*entity.MediaType, error) {
	mt := &entity.MediaType{Name: name}
	if err := uc.repo.Create(mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (uc *mediaTypeUseCase) Get(id int64) (*entity.MediaType, error) {
	return uc.repo.GetByID(id)
}

func (uc *mediaTypeUseCase) List() ([]*entity.MediaType, error) {
	return uc.repo.List()
}

func (uc *mediaTypeUseCase) Update(id int64, name string) (*entity.MediaType, error) {
	mt, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	mt.Name = name
	if err := uc.repo.Update(mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (uc *mediaTypeUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}
