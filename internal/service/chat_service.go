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

// UnknownIntentAnswer is returned when the query fits no supported domain.
const UnknownIntentAnswer = "Sorry, I couldn't understand your request."

// AskCityAnswer is returned when a weather query names no city.
const AskCityAnswer = "Please tell me which city you want the weather for."

type IChatService interface {
	Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	gateway          *translate.Gateway
	classifier       *nlu.Classifier
	extractor        *nlu.Extractor
	schemesPipeline  *rag.Pipeline
	cropCarePipeline *rag.Pipeline
	priceResolver    *mandi.Resolver
	weatherClient    *weather.Client
	simplifier       *weather.Simplifier
	logger           logger.ILogger
}

func NewChatService(
	gateway *translate.Gateway,
	classifier *nlu.Classifier,
	extractor *nlu.Extractor,
	schemesPipeline *rag.Pipeline,
	cropCarePipeline *rag.Pipeline,
	priceResolver *mandi.Resolver,
	weatherClient *weather.Client,
	simplifier *weather.Simplifier,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		gateway:          gateway,
		classifier:       classifier,
		extractor:        extractor,
		schemesPipeline:  schemesPipeline,
		cropCarePipeline: cropCarePipeline,
		priceResolver:    priceResolver,
		weatherClient:    weatherClient,
		simplifier:       simplifier,
		logger:           logger,
	}
}

// Ask runs the full conversational flow: language normalization, intent
// classification, the intent-specific answer pipeline, then translation
// of the answer back into the user's language.
func (s *chatService) Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &serverutils.ValidationError{Message: "query cannot be empty"}
	}

	// 1. Detect user language and normalize to English.
	detectedLang := s.gateway.Detect(ctx, query)
	s.logger.Info("chat", "detected language", map[string]interface{}{"language": detectedLang})

	translatedQuery := query
	if detectedLang != translate.LangEnglish {
		translatedQuery = s.gateway.Translate(ctx, query, translate.LangEnglish)
	}

	// 2. Classify intent on the normalized query.
	intent := s.classifier.Classify(ctx, translatedQuery)
	s.logger.Info("chat", "detected intent", map[string]interface{}{"intent": intent})

	// 3. Route to the intent-specific pipeline.
	answer, err := s.answerFor(ctx, intent, translatedQuery)
	if err != nil {
		return nil, err
	}

	// 4. Translate the answer back into the user's language.
	if detectedLang != translate.LangEnglish {
		answer = s.gateway.Translate(ctx, answer, detectedLang)
	}

	return &dto.ChatResponse{
		Answer:           answer,
		DetectedIntent:   intent,
		DetectedLanguage: detectedLang,
	}, nil
}

func (s *chatService) answerFor(ctx context.Context, intent string, query string) (string, error) {
	switch intent {
	case nlu.IntentWeather:
		return s.answerWeather(ctx, query), nil

	case nlu.IntentMandiPrices:
		entities := s.extractor.ExtractCropLocation(ctx, query)
		return s.priceResolver.Search(ctx, entities.Location, entities.Crop), nil

	case nlu.IntentSchemes:
		answer, err := s.schemesPipeline.Run(ctx, query)
		if err != nil {
			s.logger.Error("chat", "schemes pipeline failed", map[string]interface{}{"error": err.Error()})
			return rag.GenerationFailedAnswer, nil
		}
		return answer, nil

	case nlu.IntentAgriInfo:
		answer, err := s.cropCarePipeline.Run(ctx, query)
		if err != nil {
			s.logger.Error("chat", "crop care pipeline failed", map[string]interface{}{"error": err.Error()})
			return rag.GenerationFailedAnswer, nil
		}
		return answer, nil

	default:
		return UnknownIntentAnswer, nil
	}
}

func (s *chatService) answerWeather(ctx context.Context, query string) string {
	city := s.extractor.ExtractCity(ctx, query)
	if city == nlu.CityUnknown {
		return AskCityAnswer
	}

	forecast, err := s.weatherClient.Forecast(ctx, city)
	if err != nil {
		s.logger.Warn("chat", "forecast fetch failed", map[string]interface{}{
			"city":  city,
			"error": err.Error(),
		})
		return "Could not fetch the weather forecast for " + city + "."
	}

	return s.simplifier.Simplify(ctx, city, forecast)
}
