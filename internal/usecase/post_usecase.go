package usecase

import (
	"errors"
	"strings"
	"time"

	"mockgram/internal/entity"
	"mockgram/internal/repo/persistent"
	"mockgram/pkg/logger"
)

type PostUpdate struct {
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

type PostUseCase interface {
	CreatePost(userID int64, content, image string) (*entity.Post, error)
	GetPost(id int64) (*entity.Post, error)
	ListPosts() ([]*entity.Post, error)
	CheckOwnership(postID, userID int64) error
	UpdatePost(postID int64, update PostUpdate) error
	DeletePost(postID int64) error
	Like(postID, userID int64) error
	Unlike(postID, userID int64) error
	AddComment(postID, userID int64, text string) (*entity.Comment, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, userRepo persistent.UserRepository, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *postUseCase) CreatePost(userID int64, content, image string) (*entity.Post, error) {
	post := &entity.Post{
		UserID:   userID,
		Content:  content,
		Image:    image,
		Likes:    []int64{},
		Comments: []entity.Comment{},
	}
	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, err
	}
	return post, nil
}

func (uc *postUseCase) GetPost(id int64) (*entity.Post, error) {
	return uc.postRepo.GetByID(id)
}

func (uc *postUseCase) ListPosts() ([]*entity.Post, error) {
	return uc.postRepo.List()
}

// CheckOwnership reports ErrPostNotFound and ErrNotOwner as distinct
// kinds even though the guard surfaces both as the same status.
func (uc *postUseCase) CheckOwnership(postID, userID int64) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return entity.ErrNotOwner
	}
	return nil
}

// UpdatePost merges the supplied fields into the post. The owner id is
// immutable and never part of the update.
func (uc *postUseCase) UpdatePost(postID int64, update PostUpdate) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Image != nil {
		post.Image = *update.Image
	}

	return uc.postRepo.Update(post)
}

func (uc *postUseCase) DeletePost(postID int64) error {
	return uc.postRepo.Delete(postID)
}

func (uc *postUseCase) Like(postID, userID int64) error {
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return err
	}
	return uc.postRepo.Like(postID, userID)
}

func (uc *postUseCase) Unlike(postID, userID int64) error {
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return err
	}
	return uc.postRepo.Unlike(postID, userID)
}

func (uc *postUseCase) AddComment(postID, userID int64, text string) (*entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyComment
	}
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		UserID:    userID,
		Comment:   text,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.postRepo.AddComment(postID, comment); err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			return nil, err
		}
		uc.logger.Error("Failed to add comment to post %d: %v", postID, err)
		return nil, err
	}
	return comment, nil
}
