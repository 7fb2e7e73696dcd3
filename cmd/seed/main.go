package main

import (
	"flag"
	"fmt"
	"math/rand"

	"mockgram/internal/entity"
	"mockgram/internal/repo/persistent"
	"mockgram/internal/store"
	"mockgram/pkg/logger"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	var dbFile string
	var userCount, postCount int
	flag.StringVar(&dbFile, "file", "db.json", "Path to the JSON store file")
	flag.IntVar(&userCount, "users", 10, "Number of users to create")
	flag.IntVar(&postCount, "posts", 30, "Number of posts to create")
	flag.Parse()

	log := logger.New()

	st, err := store.Open(dbFile)
	if err != nil {
		log.Error("Failed to open store: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(st)
	postRepo := persistent.NewPostRepository(st)
	mediaTypeRepo := persistent.NewMediaTypeRepository(st)

	gofakeit.Seed(0)

	users := make([]*entity.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := &entity.User{
			Username:  gofakeit.Username(),
			Email:     gofakeit.Email(),
			Password:  gofakeit.Password(true, true, true, false, false, 10),
			Followers: []int64{},
			Following: []int64{},
			Posts:     []int64{},
			Tags:      []string{gofakeit.Hobby()},
		}
		if err := userRepo.Create(user); err != nil {
			log.Error("Failed to seed user: %v", err)
			panic(err)
		}
		users = append(users, user)
	}
	log.Info("Seeded %d users", len(users))

	for i := 0; i < postCount; i++ {
		owner := users[rand.Intn(len(users))]
		post := &entity.Post{
			UserID:   owner.ID,
			Content:  gofakeit.Sentence(12),
			Likes:    []int64{},
			Comments: []entity.Comment{},
		}
		if err := postRepo.Create(post); err != nil {
			log.Error("Failed to seed post: %v", err)
			panic(err)
		}
	}
	log.Info("Seeded %d posts", postCount)

	for _, name := range []string{"image", "video", "gif"} {
		if err := mediaTypeRepo.Create(&entity.MediaType{Name: name}); err != nil {
			log.Error("Failed to seed media type: %v", err)
			panic(err)
		}
	}

	fmt.Printf("Done: %s now has %d users and %d posts\n", dbFile, userCount, postCount)
}
