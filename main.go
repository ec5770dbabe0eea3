package main

import (
	"html/template"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ThanhPhat1080/indie-blog/auth"
	"github.com/ThanhPhat1080/indie-blog/blog"
	"github.com/ThanhPhat1080/indie-blog/common"
	"github.com/ThanhPhat1080/indie-blog/dashboard"
	"github.com/ThanhPhat1080/indie-blog/database"
	"github.com/ThanhPhat1080/indie-blog/markdown"
	"github.com/ThanhPhat1080/indie-blog/publish"
	"github.com/ThanhPhat1080/indie-blog/repository"
	"github.com/ThanhPhat1080/indie-blog/uploader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	images, err := uploader.New(uploader.ConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to configure image uploader: ", err)
	}

	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})

	router.Use(sessions.Sessions("indie-blog-session", store))

	router.SetFuncMap(template.FuncMap{
		"now": func() time.Time {
			return time.Now()
		},
		"markdown": markdown.Render,
		"imageURL": images.URL,
	})

	router.LoadHTMLGlob("*/views/*.html")

	router.Static("/public", "./public")

	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	publisher := publish.NewService(postRepo, images)

	auth.NewAuthModule(userRepo).RegisterRoutes(router)
	blog.NewBlogModule(postRepo, userRepo).RegisterRoutes(router)
	dashboard.NewDashboardModule(postRepo, userRepo, publisher, images).RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
