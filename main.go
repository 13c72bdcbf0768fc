package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REDIS_URL",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitJWT()
	utils.InitValidator()
}

func setupRouter(noteHandler *handler.NoteHandler, labelHandler *handler.LabelHandler,
	authHandler *handler.AuthHandler, statsHandler *handler.StatsHandler,
	logsRepo *repository.LogsRepo) *gin.Engine {

	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogMiddleware(logsRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", authHandler.Verify)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		notes := protected.Group("/notes")
		{
			notes.GET("", noteHandler.List)
			notes.POST("", noteHandler.Create)
			notes.GET("/archived", noteHandler.ListArchived)
			notes.GET("/trashed", noteHandler.ListTrashed)
			notes.GET("/:id", noteHandler.Get)
			notes.PUT("/:id", noteHandler.Update)
			notes.DELETE("/:id", noteHandler.Delete)

			notes.PATCH("/:id/archive", noteHandler.ToggleArchive)
			notes.PATCH("/:id/trash", noteHandler.ToggleTrash)

			notes.POST("/:id/collaborators", noteHandler.AddCollaborators)
			notes.DELETE("/:id/collaborators", noteHandler.RemoveCollaborators)

			notes.POST("/:id/labels", noteHandler.AddLabels)
			notes.DELETE("/:id/labels", noteHandler.RemoveLabels)
		}

		labels := protected.Group("/labels")
		{
			labels.GET("", labelHandler.List)
			labels.POST("", labelHandler.Create)
			labels.GET("/:id", labelHandler.Get)
			labels.PUT("/:id", labelHandler.Update)
			labels.DELETE("/:id", labelHandler.Delete)
		}

		protected.GET("/stats", statsHandler.GetUserStats)
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	redisConfig := config.LoadRedisConfig()
	smtpConfig := config.LoadSMTPConfig()
	schedulerConfig := config.LoadSchedulerConfig()

	mongoClient, err := utils.NewMongoClient(dbConfig.URI, dbConfig.MaxPoolSize,
		dbConfig.MinPoolSize, dbConfig.MaxConnIdleTime, dbConfig.RetryWrites)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	if err := repository.SetupIndexes(mongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Printf("Failed to set up indexes: %v", err)
	}

	cacheStore, err := services.NewRedisStore(redisConfig.URL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cacheStore.Close()

	notesRepo := repository.GetNotesRepo(mongoClient)
	labelsRepo := repository.GetLabelsRepo(mongoClient)
	usersRepo := repository.GetUsersRepo(mongoClient)
	logsRepo := repository.GetLogsRepo(mongoClient)

	noteCache := services.NewNoteCache(cacheStore, notesRepo)
	mailer := services.NewSMTPMailer(smtpConfig)

	scheduler := services.NewReminderScheduler(notesRepo, usersRepo, noteCache,
		mailer, nil, smtpConfig.From, schedulerConfig.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	noteService := &usecase.NoteService{
		Notes:     notesRepo,
		Cache:     noteCache,
		Scheduler: scheduler,
		Users:     usersRepo,
		Labels:    labelsRepo,
	}
	labelService := &usecase.LabelService{Labels: labelsRepo}
	userService := &usecase.UserService{
		Users:   usersRepo,
		Mailer:  mailer,
		From:    smtpConfig.From,
		BaseURL: utils.GetEnvAsString("BASE_URL", "http://localhost:"+port),
	}

	router := setupRouter(
		handler.NewNoteHandler(noteService),
		handler.NewLabelHandler(labelService),
		handler.NewAuthHandler(userService),
		handler.NewStatsHandler(notesRepo, labelsRepo, usersRepo, logsRepo),
		logsRepo,
	)

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
