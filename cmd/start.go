/*
Copyright © 2025 paperdesk
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/config"
	"github.com/paperdesk/paperdesk-be/database"
	"github.com/paperdesk/paperdesk-be/handler"
	"github.com/paperdesk/paperdesk-be/middleware"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/spf13/cobra"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the paperdesk server",
	Long:  `Starts the HTTP server that backs the paperdesk web app`,
	Run: func(cmd *cobra.Command, args []string) {

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		storage, err := service.NewDiskStorage(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to init storage: %v", err)
		}

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		// init repo
		userRepo := repository.NewUserRepo(mongoDb.Collection("users"))
		paperRepo := repository.NewPaperRepo(mongoDb.Collection("papers"))
		commentRepo := repository.NewCommentRepo(mongoDb.Collection("comments"))
		bookmarkRepo := repository.NewBookmarkRepo(mongoDb.Collection("bookmarks"))
		ratingRepo := repository.NewRatingRepo(mongoDb.Collection("ratings"))
		groupRepo := repository.NewGroupRepo(mongoDb.Collection("groups"), mongoDb.Collection("group_messages"))
		requestRepo := repository.NewRequestRepo(mongoDb.Collection("paper_requests"))
		progressRepo := repository.NewProgressRepo(mongoDb.Collection("progress"))
		examRepo := repository.NewExamRepo(mongoDb.Collection("exam_events"))

		// init service
		pdfService := service.NewPDFService(0)

		var searchService *service.SearchService
		if cfg.WeaviateStoreConfig.Host != "" {
			weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
			if err != nil {
				log.Printf("Weaviate unavailable, search disabled: %v", err)
			} else {
				searchService = service.NewSearchService(weaviateDb, paperRepo, pdfService, storage)
			}
		}

		var aiService service.AIService
		switch cfg.AIProvider {
		case "gemini":
			geminiService, err := service.NewGeminiService(cfg.GeminiAPIKeys(), cfg.Model)
			if err != nil {
				log.Printf("Gemini unavailable, chat disabled: %v", err)
			} else {
				aiService = geminiService
			}
		default:
			if cfg.OpenAIAPIKey != "" || cfg.AIEndpoint != "" {
				aiService = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
			} else {
				log.Println("No AI credentials configured, chat disabled")
			}
		}

		userService := service.NewUserService(userRepo)
		uploadService := service.NewUploadService(storage)
		paperService := service.NewPaperService(paperRepo, commentRepo, bookmarkRepo, ratingRepo, searchService)
		groupService := service.NewGroupService(groupRepo)
		groupChatService := service.NewGroupChatService(groupService)
		requestService := service.NewRequestService(requestRepo, paperRepo)
		progressService := service.NewProgressService(progressRepo, paperRepo)
		examService := service.NewExamService(examRepo)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler(cfg.AllowedOrigins)
		authHandler := handler.NewAuthHandler(userService)
		uploadHandler := handler.NewUploadHandler(uploadService)
		chatHandler := handler.NewChatHandler(aiService)
		fileHandler := handler.NewFileHandler(storage)
		paperHandler := handler.NewPaperHandler(paperService)
		searchHandler := handler.NewSearchHandler(searchService)
		groupHandler := handler.NewGroupHandler(groupService, groupChatService)
		requestHandler := handler.NewRequestHandler(requestService)
		progressHandler := handler.NewProgressHandler(progressService)
		examHandler := handler.NewExamHandler(examService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/files/*key", fileHandler.ServeFile)

		// API v1 routes
		apiV1 := router.Group("/api/v1")
		apiV1.POST("/register", authHandler.HandleRegister)
		apiV1.POST("/login", authHandler.HandleLogin)

		// Protected user routes
		userRoutes := apiV1.Group("/")
		userRoutes.Use(middleware.AuthMiddleware)
		{
			userRoutes.POST("/chat", chatHandler.HandleChat)

			userRoutes.POST("/papers/upload", uploadHandler.HandleUpload)
			userRoutes.POST("/papers", paperHandler.HandleCreatePaper)
			userRoutes.GET("/papers", paperHandler.HandleListPapers)
			userRoutes.GET("/papers/search", searchHandler.HandleSearch)
			userRoutes.GET("/papers/bookmarks", paperHandler.HandleListBookmarks)
			userRoutes.GET("/papers/:id", paperHandler.HandleGetPaper)
			userRoutes.DELETE("/papers/:id", paperHandler.HandleDeletePaper)
			userRoutes.POST("/papers/:id/upvote", paperHandler.HandleToggleUpvote)
			userRoutes.POST("/papers/:id/bookmark", paperHandler.HandleToggleBookmark)
			userRoutes.POST("/papers/:id/rate", paperHandler.HandleRatePaper)
			userRoutes.POST("/papers/:id/comments", paperHandler.HandleAddComment)
			userRoutes.GET("/papers/:id/comments", paperHandler.HandleListComments)
			userRoutes.DELETE("/comments/:id", paperHandler.HandleDeleteComment)

			userRoutes.POST("/groups", groupHandler.HandleCreateGroup)
			userRoutes.GET("/groups", groupHandler.HandleListMyGroups)
			userRoutes.POST("/groups/join", groupHandler.HandleJoinGroup)
			userRoutes.GET("/groups/:id", groupHandler.HandleGetGroup)
			userRoutes.DELETE("/groups/:id", groupHandler.HandleDeleteGroup)
			userRoutes.POST("/groups/:id/leave", groupHandler.HandleLeaveGroup)
			userRoutes.POST("/groups/:id/invite", groupHandler.HandleRegenerateInvite)
			userRoutes.GET("/groups/:id/messages", groupHandler.HandleListMessages)
			userRoutes.GET("/groups/:id/ws", groupHandler.HandleChatSocket)

			userRoutes.POST("/requests", requestHandler.HandleCreateRequest)
			userRoutes.GET("/requests", requestHandler.HandleListOpenRequests)
			userRoutes.POST("/requests/:id/fulfill", requestHandler.HandleFulfillRequest)
			userRoutes.DELETE("/requests/:id", requestHandler.HandleDeleteRequest)

			userRoutes.POST("/progress", progressHandler.HandleUpdateProgress)
			userRoutes.GET("/progress", progressHandler.HandleListProgress)
			userRoutes.GET("/progress/stats", progressHandler.HandleGetStats)

			userRoutes.POST("/exams", examHandler.HandleCreateEvent)
			userRoutes.GET("/exams", examHandler.HandleListUpcoming)
			userRoutes.DELETE("/exams/:id", examHandler.HandleDeleteEvent)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
