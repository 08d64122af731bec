package bootstrap

import (
	"context"
	"log"

	"agri-assist-be/internal/config"
	"agri-assist-be/internal/controller"
	"agri-assist-be/internal/pkg/logger"
	"agri-assist-be/internal/repository/implementation"
	"agri-assist-be/internal/service"
	"agri-assist-be/pkg/embedding"
	"agri-assist-be/pkg/llm/factory"
	"agri-assist-be/pkg/mandi"
	"agri-assist-be/pkg/nlu"
	"agri-assist-be/pkg/rag"
	"agri-assist-be/pkg/rag/source"
	"agri-assist-be/pkg/translate"
	"agri-assist-be/pkg/weather"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	AssistController controller.IAssistController

	// Exposed for main.go to flush on shutdown
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	plainLogger := log.Default()

	// 2. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Language layer
	gateway := translate.NewGateway(translate.NewGoogleProvider(cfg.Keys.GoogleTranslate), plainLogger)
	classifier := nlu.NewClassifier(llmProvider, plainLogger)
	extractor := nlu.NewExtractor(llmProvider, plainLogger)

	// 4. Retrieval pipelines
	schemeRepo := implementation.NewSchemeEmbeddingRepository(db)
	if n, err := schemeRepo.Count(context.Background()); err != nil {
		log.Printf("[WARN] Failed to count scheme vector index: %v", err)
	} else {
		log.Printf("[INFO] Scheme vector index ready (%d chunks)", n)
	}

	vectorSource := source.NewVectorSource(embeddingProvider, schemeRepo)
	wikipediaSource := source.NewWikipediaSource()
	duckduckgoSource := source.NewDuckDuckGoSource()
	tavilySource := source.NewTavilySource(cfg.Keys.Tavily)

	schemesPipeline := rag.NewPipeline(
		llmProvider,
		rag.NewAggregator(plainLogger, vectorSource, wikipediaSource, duckduckgoSource),
		rag.NewCompressor(llmProvider, plainLogger),
		rag.NewGenerator(llmProvider, "assistant for Indian farmers on government agricultural schemes", plainLogger),
		plainLogger,
	)

	cropCarePipeline := rag.NewPipeline(
		llmProvider,
		rag.NewAggregator(plainLogger, wikipediaSource, duckduckgoSource, tavilySource),
		rag.NewCompressor(llmProvider, plainLogger),
		rag.NewGenerator(llmProvider, "agricultural advisor helping Indian farmers with crop care", plainLogger),
		plainLogger,
	)

	// 5. Structured data clients
	priceResolver := mandi.NewResolver(
		mandi.NewClient(cfg.Keys.DataGov, plainLogger),
		mandi.NewLocator(llmProvider, plainLogger),
		plainLogger,
	)
	weatherClient := weather.NewClient(cfg.Keys.OpenWeatherMap, plainLogger)
	simplifier := weather.NewSimplifier(llmProvider, plainLogger)

	// 6. Services
	chatService := service.NewChatService(
		gateway,
		classifier,
		extractor,
		schemesPipeline,
		cropCarePipeline,
		priceResolver,
		weatherClient,
		simplifier,
		sysLogger,
	)
	assistService := service.NewAssistService(
		gateway,
		classifier,
		schemesPipeline,
		cropCarePipeline,
		priceResolver,
		weatherClient,
		simplifier,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		AssistController: controller.NewAssistController(assistService),
		Logger:           sysLogger,
	}
}
