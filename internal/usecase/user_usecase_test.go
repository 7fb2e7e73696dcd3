package usecase

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"mockgram/internal/entity"
	"mockgram/internal/repo/persistent"
	"mockgram/internal/store"
	"mockgram/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeUploader struct {
	calls   int
	keys    []string
	deleted []string
	err     error
}

func (f *fakeUploader) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	f.calls++
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeUploader) DeleteFile(key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func newUserUseCase(t *testing.T, uploader Uploader) (UserUseCase, persistent.UserRepository) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	assert.NoError(t, err)
	repo := persistent.NewUserRepository(st)
	return NewUserUseCase(repo, uploader, logger.New()), repo
}

func writeTestImage(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()
	assert.NoError(t, png.Encode(f, img))
	return path
}

func TestRegister_Success(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	user, err := uc.Register("alice", "alice@example.com", "secret")

	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.Followers)
	assert.Empty(t, user.Following)

	// The created record is retrievable afterwards
	fetched, err := uc.GetUser(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", fetched.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	_, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	_, err = uc.Register("someone-else", "alice@example.com", "secret")
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	_, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	_, err = uc.Register("alice", "other@example.com", "secret")
	assert.ErrorIs(t, err, entity.ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	_, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	// By email
	user, err := uc.Authenticate("alice@example.com", "", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// By username
	user, err = uc.Authenticate("", "alice", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// Wrong password
	_, err = uc.Authenticate("alice@example.com", "", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	// Unknown user
	_, err = uc.Authenticate("nobody@example.com", "", "secret")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestFollowUnfollow_RoundTrip(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)
	bob, err := uc.Register("bob", "bob@example.com", "secret")
	assert.NoError(t, err)

	// bob follows alice
	assert.NoError(t, uc.Follow(alice.ID, bob.ID))

	target, _ := uc.GetUser(alice.ID)
	actor, _ := uc.GetUser(bob.ID)
	assert.Contains(t, target.Followers, bob.ID)
	assert.Contains(t, actor.Following, alice.ID)

	// Following twice is rejected
	assert.ErrorIs(t, uc.Follow(alice.ID, bob.ID), entity.ErrAlreadyFollowing)

	// Unfollow restores the original state
	assert.NoError(t, uc.Unfollow(alice.ID, bob.ID))

	target, _ = uc.GetUser(alice.ID)
	actor, _ = uc.GetUser(bob.ID)
	assert.NotContains(t, target.Followers, bob.ID)
	assert.NotContains(t, actor.Following, alice.ID)

	// Unfollowing again is rejected
	assert.ErrorIs(t, uc.Unfollow(alice.ID, bob.ID), entity.ErrNotFollowing)
}

func TestFollow_MissingUser(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	assert.ErrorIs(t, uc.Follow(alice.ID, 999), entity.ErrUserNotFound)
	assert.ErrorIs(t, uc.Follow(999, alice.ID), entity.ErrUserNotFound)
}

func TestUpdateUser_PartialMerge(t *testing.T) {
	uc, _ := newUserUseCase(t, &fakeUploader{})

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	newEmail := "new@example.com"
	updated, err := uc.UpdateUser(alice.ID, UserUpdate{Email: &newEmail})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
}

func TestUpdateProfilePicture(t *testing.T) {
	uploader := &fakeUploader{}
	uc, _ := newUserUseCase(t, uploader)

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	imgPath := writeTestImage(t, 800, 600)
	user, err := uc.UpdateProfilePicture(alice.ID, imgPath)

	assert.NoError(t, err)
	assert.Equal(t, 1, uploader.calls)
	assert.Contains(t, user.ProfilePicture, "https://cdn.example.com/profile/")
	assert.Empty(t, user.BannerPicture)
}

func TestUpdateBannerPicture(t *testing.T) {
	uploader := &fakeUploader{}
	uc, _ := newUserUseCase(t, uploader)

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	imgPath := writeTestImage(t, 1600, 900)
	user, err := uc.UpdateBannerPicture(alice.ID, imgPath)

	assert.NoError(t, err)
	assert.Contains(t, user.BannerPicture, "https://cdn.example.com/banner/")
	assert.Empty(t, user.ProfilePicture)
}

func TestUpdateProfilePicture_ReplacesOldObject(t *testing.T) {
	uploader := &fakeUploader{}
	uc, _ := newUserUseCase(t, uploader)

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	imgPath := writeTestImage(t, 400, 400)
	_, err = uc.UpdateProfilePicture(alice.ID, imgPath)
	assert.NoError(t, err)
	assert.Empty(t, uploader.deleted)

	_, err = uc.UpdateProfilePicture(alice.ID, imgPath)
	assert.NoError(t, err)
	assert.Equal(t, []string{uploader.keys[0]}, uploader.deleted)
}

func TestUpdatePicture_UnknownUser_NoUploadAttempted(t *testing.T) {
	uploader := &fakeUploader{}
	uc, _ := newUserUseCase(t, uploader)

	imgPath := writeTestImage(t, 100, 100)
	_, err := uc.UpdateProfilePicture(999, imgPath)

	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.Zero(t, uploader.calls)
}

func TestUpdatePicture_UploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("bucket unreachable")}
	uc, _ := newUserUseCase(t, uploader)

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	imgPath := writeTestImage(t, 100, 100)
	_, err = uc.UpdateProfilePicture(alice.ID, imgPath)
	assert.Error(t, err)

	// Nothing was persisted
	fetched, _ := uc.GetUser(alice.ID)
	assert.Empty(t, fetched.ProfilePicture)
}

func TestUpdatePicture_BadImage(t *testing.T) {
	uploader := &fakeUploader{}
	uc, _ := newUserUseCase(t, uploader)

	alice, err := uc.Register("alice", "alice@example.com", "secret")
	assert.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "not-an-image.png")
	assert.NoError(t, os.WriteFile(bad, []byte("plain text"), 0o644))

	_, err = uc.UpdateProfilePicture(alice.ID, bad)
	assert.Error(t, err)
	assert.Zero(t, uploader.calls)
}
