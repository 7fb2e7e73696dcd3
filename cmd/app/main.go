package main

import (
	"mockgram/internal/app"
	"mockgram/pkg/config"
)

// @title           Mockgram API
// @version         1.0
// @description     Mock social-media backend: users, posts, follows, likes, comments and picture uploads over a flat JSON store.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
