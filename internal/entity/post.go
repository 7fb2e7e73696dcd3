package entity

import "time"

type Post struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	Content  string    `json:"content"`
	Image    string    `json:"image,omitempty"`
	Likes    []int64   `json:"likes"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *Post) IsLikedBy(userID int64) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
