package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"communew/internal/config"
	"communew/internal/database"
	"communew/internal/middleware"
	"communew/internal/modules/auth"
	"communew/internal/modules/catalog"
	"communew/internal/modules/chat"
	"communew/internal/modules/inquiry"
	"communew/internal/modules/notification"
	"communew/internal/modules/notifier"
	jwtsvc "communew/internal/pkg/jwt"
	"communew/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := auth.NewUserRepository(db)
	eventRepo := catalog.NewEventRepository(db)
	studioRepo := catalog.NewStudioRepository(db)
	chatRepo := chat.NewRepository(db)
	inquiryRepo := inquiry.NewRepository(db)
	notifRepo := notification.NewRepository(db)

	feed := realtime.NewFeed()
	hub := realtime.NewHub()

	notificationService := notification.NewService(notifRepo)
	bridge := realtime.NewBridge(feed, hub, notificationService)

	authService := auth.NewService(userRepo, j)
	catalogService := catalog.NewService(eventRepo, studioRepo)
	chatService := chat.NewService(chatRepo, userRepo, feed)
	notifierService := notifier.NewService(chatService, catalogService, cfg.DisplayLocation())
	inquiryService := inquiry.NewService(inquiryRepo, catalogService, notifierService, feed)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	chatHandler := chat.NewHandler(chatService)
	inquiryHandler := inquiry.NewHandler(inquiryService)
	notificationHandler := notification.NewHandler(notificationService)
	realtimeHandler := realtime.NewHandler(hub, bridge, j)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// websocket authenticates via query token
		realtimeHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterProtectedRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			inquiryHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
