package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formflow/internal/cache"
	"formflow/internal/config"
	"formflow/internal/repository"
	"formflow/internal/service"
	"formflow/internal/transport/rest"
	"formflow/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Grading defaults: mode=%s passing=%d points=%d",
		cfg.Grading.Mode, cfg.Grading.PassingThreshold, cfg.Grading.Points)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)
	repository.EnsureIndexes(ctx, db)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURI,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	formRepo := repository.NewFormRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	analyticsCache := cache.NewAnalyticsCache(rdb, cfg.AnalyticsCacheTTL)
	scoreBoard := cache.NewScoreBoard(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	gradingSvc := service.NewGradingService(cfg.Grading)
	analyticsSvc := service.NewAnalyticsService(submissionRepo, analyticsCache, cfg.MaxAnalyticsSubmissions)
	submissionSvc := service.NewSubmissionService(submissionRepo, scoreBoard, gradingSvc)
	formSvc := service.NewFormService(formRepo, submissionRepo, analyticsCache, scoreBoard)
	fillSvc := service.NewFillService(formRepo, sessionCache, authSvc, submissionSvc)

	// Recompute analytics after each submission
	submissionSvc.SetAnalyticsService(analyticsSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	submissionSvc.SetBroadcaster(wsHub)
	formSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		Config:            cfg,
		AuthService:       authSvc,
		FormService:       formSvc,
		FillService:       fillSvc,
		SubmissionService: submissionSvc,
		AnalyticsService:  analyticsSvc,
		GradingService:    gradingSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Owner auth: username=%s", cfg.OwnerUsername)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/forms")
		log.Println("  GET/PUT/DELETE /v1/forms/{formId}")
		log.Println("  GET  /v1/forms/{formId}/{submissions,analytics,scoreboard}")
		log.Println("  POST /v1/grade")
		log.Println("  POST /v1/forms/{formId}/sessions")
		log.Println("  GET  /v1/sessions/{sessionId}")
		log.Println("  PUT  /v1/sessions/{sessionId}/responses/{fieldId}")
		log.Println("  POST /v1/sessions/{sessionId}/{next,previous,submit}")
		log.Println("  WS   /v1/ws/forms/{formId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
