package persistent

import (
	"mockgram/internal/entity"
	"mockgram/internal/store"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	FindByEmailOrUsername(email, username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Follow(targetID, actorID int64) error
	Unfollow(targetID, actorID int64) error
}

type userRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(user *entity.User) error {
	if user.ID == 0 {
		user.ID = r.store.NextID()
	}
	return r.store.Update(func(doc *store.Document) error {
		doc.Users = append(doc.Users, *user)
		return nil
	})
}

func (r *userRepository) GetByID(id int64) (*entity.User, error) {
	var found *entity.User
	r.store.View(func(doc *store.Document) {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				u := doc.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, entity.ErrUserNotFound
	}
	return found, nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *userRepository) FindByEmailOrUsername(email, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool {
		return (email != "" && u.Email == email) || (username != "" && u.Username == username)
	})
}

func (r *userRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	var found *entity.User
	r.store.View(func(doc *store.Document) {
		for i := range doc.Users {
			if match(&doc.Users[i]) {
				u := doc.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, entity.ErrUserNotFound
	}
	return found, nil
}

func (r *userRepository) List() ([]*entity.User, error) {
	var users []*entity.User
	r.store.View(func(doc *store.Document) {
		users = make([]*entity.User, len(doc.Users))
		for i := range doc.Users {
			u := doc.Users[i]
			users[i] = &u
		}
	})
	return users, nil
}

func (r *userRepository) Update(user *entity.User) error {
	return r.store.Update(func(doc *store.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == user.ID {
				doc.Users[i] = *user
				return nil
			}
		}
		return entity.ErrUserNotFound
	})
}

// Follow mutates both user records inside one store update so a crash
// cannot leave the relationship asymmetric.
func (r *userRepository) Follow(targetID, actorID int64) error {
	return r.store.Update(func(doc *store.Document) error {
		target, actor := findUser(doc, targetID), findUser(doc, actorID)
		if target == nil || actor == nil {
			return entity.ErrUserNotFound
		}
		if containsID(target.Followers, actorID) {
			return entity.ErrAlreadyFollowing
		}
		target.Followers = append(target.Followers, actorID)
		actor.Following = append(actor.Following, targetID)
		return nil
	})
}

func (r *userRepository) Unfollow(targetID, actorID int64) error {
	return r.store.Update(func(doc *store.Document) error {
		target, actor := findUser(doc, targetID), findUser(doc, actorID)
		if target == nil || actor == nil {
			return entity.ErrUserNotFound
		}
		if !containsID(target.Followers, actorID) {
			return entity.ErrNotFollowing
		}
		target.Followers = removeID(target.Followers, actorID)
		actor.Following = removeID(actor.Following, targetID)
		return nil
	})
}

func findUser(doc *store.Document, id int64) *entity.User {
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			return &doc.Users[i]
		}
	}
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
