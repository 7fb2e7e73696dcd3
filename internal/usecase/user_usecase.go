package usecase

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"mockgram/internal/entity"
	"mockgram/internal/repo/persistent"
	"mockgram/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Cover-fit target dimensions for uploaded pictures.
const (
	ProfilePictureWidth  = 200
	ProfilePictureHeight = 200
	BannerPictureWidth   = 1200
	BannerPictureHeight  = 400
)

// Uploader pushes image bytes to the cloud store and returns a public URL.
type Uploader interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

type UserUpdate struct {
	Username       *string  `json:"username"`
	Email          *string  `json:"email"`
	Password       *string  `json:"password"`
	ProfilePicture *string  `json:"profilePicture"`
	BannerPicture  *string  `json:"bannerPicture"`
	Likes          *int     `json:"likes"`
	Tags           []string `json:"tags"`
}

type UserUseCase interface {
	Register(username, email, password string) (*entity.User, error)
	FindByEmailOrUsername(email, username string) (*entity.User, error)
	Authenticate(email, username, password string) (*entity.User, error)
	GetUser(id int64) (*entity.User, error)
	ListUsers() ([]*entity.User, error)
	UpdateUser(id int64, update UserUpdate) (*entity.User, error)
	Follow(targetID, actorID int64) error
	Unfollow(targetID, actorID int64) error
	UpdateProfilePicture(userID int64, imagePath string) (*entity.User, error)
	UpdateBannerPicture(userID int64, imagePath string) (*entity.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
	uploader Uploader
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, uploader Uploader, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (uc *userUseCase) Register(username, email, password string) (*entity.User, error) {
	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, entity.ErrEmailTaken
	}
	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, entity.ErrUsernameTaken
	}

	user := &entity.User{
		Username:  username,
		Email:     email,
		Password:  password,
		Followers: []int64{},
		Following: []int64{},
		Posts:     []int64{},
		Tags:      []string{},
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user")
	}

	return user.Public(), nil
}

func (uc *userUseCase) FindByEmailOrUsername(email, username string) (*entity.User, error) {
	return uc.userRepo.FindByEmailOrUsername(email, username)
}

func (uc *userUseCase) Authenticate(email, username, password string) (*entity.User, error) {
	user, err := uc.userRepo.FindByEmailOrUsername(email, username)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}
	// Plaintext comparison: this is a prototyping backend with no real
	// credential handling.
	if user.Password != password {
		return nil, entity.ErrInvalidCredentials
	}
	return user.Public(), nil
}

func (uc *userUseCase) GetUser(id int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (uc *userUseCase) ListUsers() ([]*entity.User, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		users[i] = u.Public()
	}
	return users, nil
}

// UpdateUser merges the supplied fields into the record. Uniqueness of
// email and username is checked at creation time only.
func (uc *userUseCase) UpdateUser(id int64, update UserUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.BannerPicture != nil {
		user.BannerPicture = *update.BannerPicture
	}
	if update.Likes != nil {
		user.Likes = *update.Likes
	}
	if update.Tags != nil {
		user.Tags = update.Tags
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user %d: %v", id, err)
		return nil, err
	}
	return user.Public(), nil
}

func (uc *userUseCase) Follow(targetID, actorID int64) error {
	return uc.userRepo.Follow(targetID, actorID)
}

func (uc *userUseCase) Unfollow(targetID, actorID int64) error {
	return uc.userRepo.Unfollow(targetID, actorID)
}

func (uc *userUseCase) UpdateProfilePicture(userID int64, imagePath string) (*entity.User, error) {
	return uc.updatePicture(userID, imagePath, ProfilePictureWidth, ProfilePictureHeight, "profile")
}

func (uc *userUseCase) UpdateBannerPicture(userID int64, imagePath string) (*entity.User, error) {
	return uc.updatePicture(userID, imagePath, BannerPictureWidth, BannerPictureHeight, "banner")
}

func (uc *userUseCase) updatePicture(userID int64, imagePath string, width, height int, kind string) (*entity.User, error) {
	// Look the user up before touching the image so an invalid id never
	// costs a resize or an upload.
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Open(imagePath)
	if err != nil {
		uc.logger.Error("Failed to decode %s picture for user %d: %v", kind, userID, err)
		return nil, fmt.Errorf("failed to process image")
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		uc.logger.Error("Failed to encode %s picture for user %d: %v", kind, userID, err)
		return nil, fmt.Errorf("failed to process image")
	}

	key := fmt.Sprintf("%s/%d/%s.jpg", kind, userID, uuid.New().String())
	url, err := uc.uploader.UploadFile(key, &buf, "image/jpeg")
	if err != nil {
		uc.logger.Error("Failed to upload %s picture for user %d: %v", kind, userID, err)
		return nil, fmt.Errorf("failed to upload image")
	}

	oldURL := user.ProfilePicture
	if kind == "banner" {
		oldURL = user.BannerPicture
		user.BannerPicture = url
	} else {
		user.ProfilePicture = url
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to save %s picture URL for user %d: %v", kind, userID, err)
		return nil, err
	}

	// Best-effort cleanup of the replaced object. The record already points
	// at the new URL, so a failure here only leaks storage.
	if oldKey := objectKey(oldURL, kind); oldKey != "" {
		if err := uc.uploader.DeleteFile(oldKey); err != nil {
			uc.logger.Warn("Failed to delete old %s picture for user %d: %v", kind, userID, err)
		}
	}

	return user.Public(), nil
}

// objectKey recovers the storage key from a picture URL previously built
// by updatePicture. External URLs (seed data, manual edits) yield "".
func objectKey(url, kind string) string {
	idx := strings.Index(url, kind+"/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}
