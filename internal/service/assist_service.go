package service

import (
	"context"
	"strings"

	"agri-assist-be/internal/dto"
	"agri-assist-be/internal/pkg/logger"
	"agri-assist-be/internal/pkg/serverutils"
	"agri-assist-be/pkg/mandi"
	"agri-assist-be/pkg/nlu"
	"agri-assist-be/pkg/rag"
	"agri-assist-be/pkg/translate"
	"agri-assist-be/pkg/weather"
)

// IAssistService exposes the individual assistant capabilities directly,
// without the language round trip of the chat flow. English in, English out.
type IAssistService interface {
	DetectLanguage(ctx context.Context, text string) (*dto.DetectLanguageResponse, error)
	TranslateToEnglish(ctx context.Context, text string) (*dto.TranslationResponse, error)
	TranslateFromEnglish(ctx context.Context, text, targetLang string) (*dto.TranslationResponse, error)
	DetectIntent(ctx context.Context, query string) (*dto.DetectIntentResponse, error)
	Schemes(ctx context.Context, query string) (*dto.KnowledgeResponse, error)
	AgricultureInfo(ctx context.Context, query string) (*dto.KnowledgeResponse, error)
	MandiPrices(ctx context.Context, city, crop string) (*dto.MandiPricesResponse, error)
	Weather(ctx context.Context, city string) (*dto.WeatherResponse, error)
}

type assistService struct {
	gateway          *translate.Gateway
	classifier       *nlu.Classifier
	schemesPipeline  *rag.Pipeline
	cropCarePipeline *rag.Pipeline
	priceResolver    *mandi.Resolver
	weatherClient    *weather.Client
	simplifier       *weather.Simplifier
	logger           logger.ILogger
}

func NewAssistService(
	gateway *translate.Gateway,
	classifier *nlu.Classifier,
	schemesPipeline *rag.Pipeline,
	cropCarePipeline *rag.Pipeline,
	priceResolver *mandi.Resolver,
	weatherClient *weather.Client,
	simplifier *weather.Simplifier,
	logger logger.ILogger,
) IAssistService {
	return &assistService{
		gateway:          gateway,
		classifier:       classifier,
		schemesPipeline:  schemesPipeline,
		cropCarePipeline: cropCarePipeline,
		priceResolver:    priceResolver,
		weatherClient:    weatherClient,
		simplifier:       simplifier,
		logger:           logger,
	}
}

func requireText(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &serverutils.ValidationError{Message: field + " cannot be empty"}
	}
	return trimmed, nil
}

func (s *assistService) DetectLanguage(ctx context.Context, text string) (*dto.DetectLanguageResponse, error) {
	text, err := requireText(text, "text")
	if err != nil {
		return nil, err
	}
	return &dto.DetectLanguageResponse{
		Text:     text,
		Language: s.gateway.Detect(ctx, text),
	}, nil
}

func (s *assistService) TranslateToEnglish(ctx context.Context, text string) (*dto.TranslationResponse, error) {
	text, err := requireText(text, "text")
	if err != nil {
		return nil, err
	}
	return &dto.TranslationResponse{
		Text:       text,
		Translated: s.gateway.Translate(ctx, text, translate.LangEnglish),
		TargetLang: translate.LangEnglish,
	}, nil
}

func (s *assistService) TranslateFromEnglish(ctx context.Context, text, targetLang string) (*dto.TranslationResponse, error) {
	text, err := requireText(text, "text")
	if err != nil {
		return nil, err
	}
	targetLang, err = requireText(targetLang, "target_lang")
	if err != nil {
		return nil, err
	}
	return &dto.TranslationResponse{
		Text:       text,
		Translated: s.gateway.Translate(ctx, text, targetLang),
		TargetLang: targetLang,
	}, nil
}

func (s *assistService) DetectIntent(ctx context.Context, query string) (*dto.DetectIntentResponse, error) {
	query, err := requireText(query, "query")
	if err != nil {
		return nil, err
	}
	return &dto.DetectIntentResponse{
		Query:  query,
		Intent: s.classifier.Classify(ctx, query),
	}, nil
}

func (s *assistService) Schemes(ctx context.Context, query string) (*dto.KnowledgeResponse, error) {
	return s.runPipeline(ctx, s.schemesPipeline, "schemes", query)
}

func (s *assistService) AgricultureInfo(ctx context.Context, query string) (*dto.KnowledgeResponse, error) {
	return s.runPipeline(ctx, s.cropCarePipeline, "crop care", query)
}

func (s *assistService) runPipeline(ctx context.Context, pipeline *rag.Pipeline, name, query string) (*dto.KnowledgeResponse, error) {
	query, err := requireText(query, "query")
	if err != nil {
		return nil, err
	}

	answer, err := pipeline.Run(ctx, query)
	if err != nil {
		s.logger.Error("assist", name+" pipeline failed", map[string]interface{}{"error": err.Error()})
		answer = rag.GenerationFailedAnswer
	}
	return &dto.KnowledgeResponse{Query: query, Answer: answer}, nil
}

func (s *assistService) MandiPrices(ctx context.Context, city, crop string) (*dto.MandiPricesResponse, error) {
	city, err := requireText(city, "city")
	if err != nil {
		return nil, err
	}
	crop, err = requireText(crop, "crop")
	if err != nil {
		return nil, err
	}

	result := s.priceResolver.Search(ctx, city, crop)
	return &dto.MandiPricesResponse{City: city, Crop: crop, Result: result}, nil
}

func (s *assistService) Weather(ctx context.Context, city string) (*dto.WeatherResponse, error) {
	city, err := requireText(city, "city")
	if err != nil {
		return nil, err
	}

	forecast, err := s.weatherClient.Forecast(ctx, city)
	if err != nil {
		s.logger.Warn("assist", "forecast fetch failed", map[string]interface{}{
			"city":  city,
			"error": err.Error(),
		})
		return &dto.WeatherResponse{
			City:     city,
			Forecast: "Could not fetch the weather forecast for " + city + ".",
		}, nil
	}

	return &dto.WeatherResponse{
		City:     city,
		Forecast: forecast,
		Advisory: s.simplifier.Simplify(ctx, city, forecast),
	}, nil
}
