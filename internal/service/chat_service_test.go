package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"agri-assist-be/internal/dto"
	"agri-assist-be/internal/pkg/serverutils"
	"agri-assist-be/pkg/llm"
	"agri-assist-be/pkg/mandi"
	"agri-assist-be/pkg/nlu"
	"agri-assist-be/pkg/rag"
	"agri-assist-be/pkg/translate"
	"agri-assist-be/pkg/weather"
)

type scriptedLLM struct {
	fn func(prompt string) (string, error)
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return s.fn(last)
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.fn(prompt)
}

// identityTranslator reports a fixed language and marks translations so
// tests can observe the round trip.
type identityTranslator struct {
	lang string
}

func (p *identityTranslator) Detect(ctx context.Context, text string) (string, error) {
	return p.lang, nil
}

func (p *identityTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return "[" + targetLang + "]" + text, nil
}

type fixedSource struct {
	docs []rag.Document
}

func (s *fixedSource) Name() string { return "fixed" }

func (s *fixedSource) Retrieve(ctx context.Context, query string) ([]rag.Document, error) {
	return s.docs, nil
}

func newTestChatService(lang string, model llm.LLMProvider) IChatService {
	l := log.Default()
	sysLogger := noopLogger{}

	gateway := translate.NewGateway(&identityTranslator{lang: lang}, l)
	classifier := nlu.NewClassifier(model, l)
	extractor := nlu.NewExtractor(model, l)

	pipeline := rag.NewPipeline(
		model,
		rag.NewAggregator(l, &fixedSource{docs: []rag.Document{{Content: "scheme text", Source: "fixed"}}}),
		rag.NewCompressor(model, l),
		rag.NewGenerator(model, "advisor", l),
		l,
	)

	resolver := mandi.NewResolver(nil, mandi.NewLocator(model, l), l)
	weatherClient := weather.NewClient("unused", l)
	simplifier := weather.NewSimplifier(model, l)

	return NewChatService(gateway, classifier, extractor, pipeline, pipeline, resolver, weatherClient, simplifier, sysLogger)
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func TestAskEmptyQuery(t *testing.T) {
	svc := newTestChatService("en", &scriptedLLM{fn: func(string) (string, error) { return "", nil }})

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{Query: "   "})
	if err == nil {
		t.Fatal("expected validation error for empty query")
	}
	var validationErr *serverutils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("error type = %T, want *serverutils.ValidationError", err)
	}
}

func TestAskUnknownIntent(t *testing.T) {
	model := &scriptedLLM{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Intent:") {
			return "smalltalk", nil
		}
		return "", errors.New("unexpected model call")
	}}
	svc := newTestChatService("en", model)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{Query: "hello there"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if res.Answer != UnknownIntentAnswer {
		t.Errorf("Answer = %q, want %q", res.Answer, UnknownIntentAnswer)
	}
	if res.DetectedIntent != nlu.IntentUnknown {
		t.Errorf("DetectedIntent = %q, want %q", res.DetectedIntent, nlu.IntentUnknown)
	}
	if res.DetectedLanguage != "en" {
		t.Errorf("DetectedLanguage = %q, want %q", res.DetectedLanguage, "en")
	}
}

func TestAskSchemesRoundTrip(t *testing.T) {
	model := &scriptedLLM{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Intent:"):
			return "schemes", nil
		case strings.Contains(prompt, "Rewritten Query:"):
			return "rewritten", nil
		case strings.Contains(prompt, "Compressed Content:"):
			return "compressed", nil
		default:
			return "english answer", nil
		}
	}}
	svc := newTestChatService("hi", model)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{Query: "yojana?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if res.DetectedIntent != nlu.IntentSchemes {
		t.Errorf("DetectedIntent = %q, want %q", res.DetectedIntent, nlu.IntentSchemes)
	}
	if res.DetectedLanguage != "hi" {
		t.Errorf("DetectedLanguage = %q", res.DetectedLanguage)
	}
	// The final answer must be translated back into the user's language.
	if res.Answer != "[hi]english answer" {
		t.Errorf("Answer = %q, want the hi-translated answer", res.Answer)
	}
}

func TestAskEnglishSkipsTranslation(t *testing.T) {
	model := &scriptedLLM{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Intent:") {
			return "nonsense", nil
		}
		return "", nil
	}}
	svc := newTestChatService("en", model)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{Query: "hello"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if strings.Contains(res.Answer, "[") {
		t.Errorf("English answers must not pass through the translator: %q", res.Answer)
	}
}

func TestAskWeatherNoCity(t *testing.T) {
	model := &scriptedLLM{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Intent:"):
			return "weather", nil
		case strings.Contains(prompt, "City name:"):
			return "unknown", nil
		default:
			return "", errors.New("unexpected model call")
		}
	}}
	svc := newTestChatService("en", model)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{Query: "will it rain"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if res.Answer != AskCityAnswer {
		t.Errorf("Answer = %q, want %q", res.Answer, AskCityAnswer)
	}
}
