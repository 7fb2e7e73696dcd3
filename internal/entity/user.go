package entity

type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password,omitempty"`
	ProfilePicture string  `json:"profilePicture"`
	BannerPicture  string  `json:"bannerPicture"`
	Followers      []int64 `json:"followers"`
	Following      []int64 `json:"following"`
	Posts          []int64 `json:"posts"`
	Likes          int     `json:"likes"`
	Tags           []string `json:"tags"`
}

// Public returns a copy safe to send back to clients.
func (u *User) Public() *User {
	out := *u
	out.Password = ""
	return &out
}

func (u *User) IsFollowedBy(userID int64) bool {
	for _, id := range u.Followers {
		if id == userID {
			return true
		}
	}
	return false
}
