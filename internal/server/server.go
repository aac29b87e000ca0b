package server

import (
	"context"
	"log"
	"strings"
	"time"

	"lokalpulse.com/gbpdashboard/internal/config"
	"lokalpulse.com/gbpdashboard/internal/middleware"
	"lokalpulse.com/gbpdashboard/pkg/period"
	"lokalpulse.com/gbpdashboard/pkg/storage"

	catalogHttp "lokalpulse.com/gbpdashboard/internal/modules/catalog/delivery/http"
	catalogService "lokalpulse.com/gbpdashboard/internal/modules/catalog/service"

	locationHttp "lokalpulse.com/gbpdashboard/internal/modules/location/delivery/http"
	locationProvider "lokalpulse.com/gbpdashboard/internal/modules/location/provider"
	locationRepo "lokalpulse.com/gbpdashboard/internal/modules/location/repository"
	locationService "lokalpulse.com/gbpdashboard/internal/modules/location/service"

	mediaHttp "lokalpulse.com/gbpdashboard/internal/modules/media/delivery/http"
	mediaRepo "lokalpulse.com/gbpdashboard/internal/modules/media/repository"
	mediaService "lokalpulse.com/gbpdashboard/internal/modules/media/service"

	notiHttp "lokalpulse.com/gbpdashboard/internal/modules/notification/delivery/http"
	notifRepo "lokalpulse.com/gbpdashboard/internal/modules/notification/repository"
	notifService "lokalpulse.com/gbpdashboard/internal/modules/notification/service"

	progressHttp "lokalpulse.com/gbpdashboard/internal/modules/progress/delivery/http"
	progressRepo "lokalpulse.com/gbpdashboard/internal/modules/progress/repository"
	progressService "lokalpulse.com/gbpdashboard/internal/modules/progress/service"

	reviewHttp "lokalpulse.com/gbpdashboard/internal/modules/review/delivery/http"
	reviewRepo "lokalpulse.com/gbpdashboard/internal/modules/review/repository"
	reviewService "lokalpulse.com/gbpdashboard/internal/modules/review/service"

	searchService "lokalpulse.com/gbpdashboard/internal/modules/search/service"

	taskHttp "lokalpulse.com/gbpdashboard/internal/modules/task/delivery/http"
	taskRepo "lokalpulse.com/gbpdashboard/internal/modules/task/repository"
	taskService "lokalpulse.com/gbpdashboard/internal/modules/task/service"

	userHttp "lokalpulse.com/gbpdashboard/internal/modules/user/delivery/http"
	userRepo "lokalpulse.com/gbpdashboard/internal/modules/user/repository"
	userService "lokalpulse.com/gbpdashboard/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	usersRepo := userRepo.NewUserRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	// Initialize Meilisearch
	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	meiliSvc := searchService.NewMeiliSearchService(meiliClient)

	authSvc := userService.NewAuthService(usersRepo, meiliSvc)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// The template catalog is embedded; a parse failure is a build defect.
	catalogSvc, err := catalogService.NewService()
	if err != nil {
		log.Fatalf("failed to load task catalog: %v", err)
	}
	catalogHandler := catalogHttp.NewCatalogHandler(catalogSvc)

	if err := meiliSvc.IndexTemplates(catalogSvc.Templates()); err != nil {
		log.Printf("failed to index task templates: %v", err)
	}

	snapshots := locationProvider.NewPlacesProvider(cfg.PlacesAPIBaseURL, cfg.PlacesAPIKey, redisClient, cfg.SnapshotCacheTTL)

	locationsRepo := locationRepo.NewRepository(db)
	locationSvc := locationService.NewService(locationsRepo, snapshots, meiliSvc)
	locationHandler := locationHttp.NewLocationHandler(locationSvc)

	photosRepo := mediaRepo.NewRepository(db)
	mediaSvc := mediaService.NewService(photosRepo, locationSvc, imageStorage)
	mediaHandler := mediaHttp.NewMediaHandler(mediaSvc)

	notificationsRepo := notifRepo.NewRepository(db)
	notificationSvc := notifService.NewService(notificationsRepo, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	progressesRepo := progressRepo.NewRepository(db)
	progressSvc := progressService.NewService(progressesRepo)
	progressHandler := progressHttp.NewProgressHandler(progressSvc)

	tasksRepo := taskRepo.NewRepository(db)
	taskSvc := taskService.NewService(
		db,
		tasksRepo,
		locationsRepo,
		locationSvc,
		catalogSvc,
		progressSvc,
		notificationSvc,
		redisClient,
		cfg.AllowAllTasks,
		cfg.GenerationLockTTL,
	)
	taskHandler := taskHttp.NewTaskHandler(taskSvc)

	repliesRepo := reviewRepo.NewRepository(db)
	reviewSvc := reviewService.NewService(repliesRepo, locationSvc)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	// Background completion audit: re-checks recent completions against a
	// fresh snapshot and reverses credit for work that was undone.
	go func() {
		ticker := time.NewTicker(cfg.AuditSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("Running completion audit sweep...")
			if err := taskSvc.AuditSweep(context.Background()); err != nil {
				log.Printf("Audit sweep failed: %v", err)
			}
		}
	}()

	if redisClient != nil {
		go runPeriodResets(redisClient, progressesRepo)
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(usersRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", authHandler.Me)

		// Catalog routes
		protected.GET("/catalog", catalogHandler.GetCatalog)

		// Location routes
		protected.POST("/locations", locationHandler.CreateLocation)
		protected.GET("/locations", locationHandler.GetMyLocations)
		protected.GET("/locations/:location_id", locationHandler.GetLocation)
		protected.PUT("/locations/:location_id", locationHandler.UpdateLocation)
		protected.DELETE("/locations/:location_id", locationHandler.DeleteLocation)
		protected.GET("/locations/:location_id/snapshot", locationHandler.GetSnapshot)

		// Photo routes
		protected.POST("/locations/:location_id/photos", mediaHandler.UploadPhoto)
		protected.GET("/locations/:location_id/photos", mediaHandler.GetPhotos)
		protected.DELETE("/photos/:photo_id", mediaHandler.DeletePhoto)

		// Task routes
		protected.POST("/tasks/generate", taskHandler.GenerateTasks)
		protected.GET("/tasks", taskHandler.GetTasks)
		protected.PUT("/tasks/:task_id/start", taskHandler.StartTask)
		protected.PUT("/tasks/:task_id/complete", taskHandler.CompleteTask)
		protected.GET("/tasks/recommendations", taskHandler.GetRecommendations)

		// Progress routes
		protected.GET("/locations/:location_id/progress", progressHandler.GetProgress)
		protected.GET("/leaderboard", progressHandler.GetLeaderboard)

		// Review reply routes
		protected.POST("/reviews/replies", reviewHandler.CreateReply)
		protected.GET("/reviews/replies", reviewHandler.GetReplies)
		protected.PUT("/reviews/replies/:reply_id", reviewHandler.UpdateReply)
		protected.PUT("/reviews/replies/:reply_id/publish", reviewHandler.PublishReply)
		protected.DELETE("/reviews/replies/:reply_id", reviewHandler.DeleteReply)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// runPeriodResets zeroes weekly and monthly point counters when a new ISO
// week or calendar month begins. Redis remembers the last period handled so
// restarts and multiple replicas don't double-reset.
func runPeriodResets(redisClient *redis.Client, progresses progressRepo.Repository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		now := time.Now().UTC()

		week := period.WeekKey(now)
		last, _ := redisClient.Get(ctx, "progress:last_weekly_reset").Result()
		if last != week {
			if err := progresses.ResetWeekly(ctx); err != nil {
				log.Printf("weekly points reset failed: %v", err)
			} else {
				redisClient.Set(ctx, "progress:last_weekly_reset", week, 0)
				log.Printf("weekly points reset for %s", week)
			}
		}

		month := now.Format("2006-01")
		last, _ = redisClient.Get(ctx, "progress:last_monthly_reset").Result()
		if last != month {
			if err := progresses.ResetMonthly(ctx); err != nil {
				log.Printf("monthly points reset failed: %v", err)
			} else {
				redisClient.Set(ctx, "progress:last_monthly_reset", month, 0)
				log.Printf("monthly points reset for %s", month)
			}
		}
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
