// @title Blog API
// @version 1.0
// @description Users, blog posts, likes and comments.
// @host localhost:3000
// @BasePath /

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pllus/main-blog/bootstrap"
	"github.com/pllus/main-blog/config"
	"github.com/pllus/main-blog/database"
	"github.com/pllus/main-blog/internal/repository"
	"github.com/pllus/main-blog/internal/routes"
)

func main() {
	cfg := config.LoadConfig()

	deps := routes.Deps{Config: cfg}
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Println("Using in-memory store; data is lost on exit")
		deps.Users = repository.NewMemoryUserRepository()
		deps.Posts = repository.NewMemoryBlogRepository()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			cancel()
			log.Fatalf("Error connecting to MongoDB: %v", err)
		}
		defer database.DisconnectMongo(client)

		if err := bootstrap.EnsureBlogIndexes(ctx, db); err != nil {
			cancel()
			log.Fatalf("ensure indexes failed: %v", err)
		}
		cancel()

		deps.Users = repository.NewMongoUserRepository(db)
		deps.Posts = repository.NewMongoBlogRepository(db)
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set; login will not issue access tokens")
	}

	app := routes.NewApp(deps)

	go func() {
		log.Printf("listening at http://localhost:%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
