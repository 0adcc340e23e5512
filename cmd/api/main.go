package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/xeoai/chatbot-saas-be/internal/core/knowledge"
	"github.com/xeoai/chatbot-saas-be/internal/core/llm"
	"github.com/xeoai/chatbot-saas-be/internal/core/metering"
	"github.com/xeoai/chatbot-saas-be/internal/core/relay"
	"github.com/xeoai/chatbot-saas-be/internal/handlers"
	"github.com/xeoai/chatbot-saas-be/internal/repositories"
	"github.com/xeoai/chatbot-saas-be/internal/services"
	"github.com/xeoai/chatbot-saas-be/internal/shared/config"
	"github.com/xeoai/chatbot-saas-be/internal/shared/database"
	"github.com/xeoai/chatbot-saas-be/internal/shared/logger"

	_ "github.com/xeoai/chatbot-saas-be/cmd/api/docs"
)

// @title Chatbot SaaS API
// @version 1.0
// @description API documentation for the embeddable AI chatbot backend
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@xeoai.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	logger.Init(cfg.Env)
	log.Printf("🚀 Starting chatbot-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	businessRepo := repositories.NewBusinessRepo(db.GORM)
	planRepo := repositories.NewPlanRepo(db.GORM)
	usageRepo := repositories.NewUsageRepo(db.GORM)
	cacheRepo := repositories.NewCacheRepo(db.GORM)
	conversationRepo := repositories.NewConversationRepo(db.GORM)
	knowledgeRepo := repositories.NewKnowledgeRepo(db.GORM)
	widgetRepo := repositories.NewWidgetRepo(db.GORM)

	// Init LLM service (relay fallback when no API key is configured)
	var provider llm.Provider
	if cfg.OpenAIKey == "" && cfg.RelayURL != "" {
		provider = relay.NewProvider(relay.NewClient(cfg.RelayURL, cfg.RelayAppID))
	} else {
		provider = llm.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	llmService := llm.NewService(provider)
	log.Printf("🤖 Using LLM provider: %s", llmService.GetProviderName())

	// Init metering gate
	clock := metering.SystemClock()
	gate := metering.NewGate(usageRepo, planRepo, clock, cfg.FreeMessageLimit)

	// Init services
	chatService := services.NewChatService(businessRepo, planRepo, cacheRepo, conversationRepo, gate, llmService)
	businessService := services.NewBusinessService(businessRepo, planRepo, usageRepo, cacheRepo, widgetRepo, clock, cfg.WidgetBaseURL, cfg.FreeMessageLimit)

	// Init website knowledge refresher
	refresher := knowledge.NewRefresher(knowledgeRepo, knowledge.NewFetcher())
	if err := refresher.Start(cfg.RefreshSchedule); err != nil {
		log.Fatalf("Failed to start knowledge refresher: %v", err)
	}
	defer refresher.Stop()
	log.Printf("🔄 Knowledge refresh schedule: %s", cfg.RefreshSchedule)

	// Init handlers
	chatHandler := handlers.NewChatHandler(chatService)
	freeChatHandler := handlers.NewFreeChatHandler(chatService, cfg.RelayAppID)
	widgetHandler := handlers.NewWidgetHandler(businessService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	healthHandler := handlers.NewHealthHandler(llmService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Chatbot SaaS API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Chat routes
	app.Post("/chat", chatHandler.Chat)
	app.Post("/free-chat", freeChatHandler.FreeChat)
	app.Get("/chat/:businessId/history/:sessionId", chatHandler.History)

	// Widget routes
	app.Get("/widget/:businessId", widgetHandler.GetWidget)
	app.Get("/widget/:businessId/suggestions", widgetHandler.GetSuggestions)
	app.Get("/widget/:businessId/qr", widgetHandler.GetEmbedQR)

	// Business dashboard routes
	app.Get("/business/:businessId/usage", businessHandler.GetUsage)
	app.Get("/business/:businessId/cache", businessHandler.GetCacheStats)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ chatbot-api running at :%s", port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", port)
	log.Fatal(app.Listen(":" + port))
}
