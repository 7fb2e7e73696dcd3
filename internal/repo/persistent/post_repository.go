package persistent

import (
	"mockgram/internal/entity"
	"mockgram/internal/store"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id int64) (*entity.Post, error)
	List() ([]*entity.Post, error)
	Update(post *entity.Post) error
	Delete(id int64) error
	Like(postID, userID int64) error
	Unlike(postID, userID int64) error
	AddComment(postID int64, comment *entity.Comment) error
	NextID() int64
}

type postRepository struct {
	store *store.Store
}

func NewPostRepository(s *store.Store) PostRepository {
	return &postRepository{store: s}
}

func (r *postRepository) NextID() int64 {
	return r.store.NextID()
}

func (r *postRepository) Create(post *entity.Post) error {
	if post.ID == 0 {
		post.ID = r.store.NextID()
	}
	if post.Likes == nil {
		post.Likes = []int64{}
	}
	if post.Comments == nil {
		post.Comments = []entity.Comment{}
	}
	return r.store.Update(func(doc *store.Document) error {
		doc.Posts = append(doc.Posts, *post)
		return nil
	})
}

func (r *postRepository) GetByID(id int64) (*entity.Post, error) {
	var found *entity.Post
	r.store.View(func(doc *store.Document) {
		for i := range doc.Posts {
			if doc.Posts[i].ID == id {
				p := doc.Posts[i]
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, entity.ErrPostNotFound
	}
	return found, nil
}

func (r *postRepository) List() ([]*entity.Post, error) {
	var posts []*entity.Post
	r.store.View(func(doc *store.Document) {
		posts = make([]*entity.Post, len(doc.Posts))
		for i := range doc.Posts {
			p := doc.Posts[i]
			posts[i] = &p
		}
	})
	return posts, nil
}

func (r *postRepository) Update(post *entity.Post) error {
	return r.store.Update(func(doc *store.Document) error {
		for i := range doc.Posts {
			if doc.Posts[i].ID == post.ID {
				doc.Posts[i] = *post
				return nil
			}
		}
		return entity.ErrPostNotFound
	})
}

func (r *postRepository) Delete(id int64) error {
	return r.store.Update(func(doc *store.Document) error {
		for i := range doc.Posts {
			if doc.Posts[i].ID == id {
				doc.Posts = append(doc.Posts[:i], doc.Posts[i+1:]...)
				return nil
			}
		}
		return entity.ErrPostNotFound
	})
}

func (r *postRepository) Like(postID, userID int64) error {
	return r.store.Update(func(doc *store.Document) error {
		post := findPost(doc, postID)
		if post == nil {
			return entity.ErrPostNotFound
		}
		if containsID(post.Likes, userID) {
			return entity.ErrAlreadyLiked
		}
		post.Likes = append(post.Likes, userID)
		return nil
	})
}

func (r *postRepository) Unlike(postID, userID int64) error {
	return r.store.Update(func(doc *store.Document) error {
		post := findPost(doc, postID)
		if post == nil {
			return entity.ErrPostNotFound
		}
		if !containsID(post.Likes, userID) {
			return entity.ErrNotLiked
		}
		post.Likes = removeID(post.Likes, userID)
		return nil
	})
}

func (r *postRepository) AddComment(postID int64, comment *entity.Comment) error {
	if comment.ID == 0 {
		comment.ID = r.store.NextID()
	}
	return r.store.Update(func(doc *store.Document) error {
		post := findPost(doc, postID)
		if post == nil {
			return entity.ErrPostNotFound
		}
		post.Comments = append(post.Comments, *comment)
		return nil
	})
}

func findPost(doc *store.Document, id int64) *entity.Post {
	for i := range doc.Posts {
		if doc.Posts[i].ID == id {
			return &doc.Posts[i]
		}
	}
	return nil
}
