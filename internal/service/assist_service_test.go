package service

import (
	"context"
	"log"
	"strings"
	"testing"

	"agri-assist-be/internal/pkg/serverutils"
	"agri-assist-be/pkg/llm"
	"agri-assist-be/pkg/mandi"
	"agri-assist-be/pkg/nlu"
	"agri-assist-be/pkg/rag"
	"agri-assist-be/pkg/translate"
	"agri-assist-be/pkg/weather"

	"github.com/stretchr/testify/assert"
)

func newTestAssistService(model llm.LLMProvider) IAssistService {
	l := log.Default()

	gateway := translate.NewGateway(&identityTranslator{lang: "hi"}, l)
	classifier := nlu.NewClassifier(model, l)

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

	return NewAssistService(gateway, classifier, pipeline, pipeline, resolver, weatherClient, simplifier, noopLogger{})
}

func TestAssistValidation(t *testing.T) {
	svc := newTestAssistService(&scriptedLLM{fn: func(string) (string, error) { return "", nil }})
	ctx := context.Background()

	_, err := svc.DetectLanguage(ctx, "  ")
	assert.Error(t, err)
	assert.IsType(t, &serverutils.ValidationError{}, err)

	_, err = svc.TranslateFromEnglish(ctx, "hello", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "target_lang")

	_, err = svc.MandiPrices(ctx, "Pune", " ")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "crop")
}

func TestAssistDetectLanguage(t *testing.T) {
	svc := newTestAssistService(&scriptedLLM{fn: func(string) (string, error) { return "", nil }})

	res, err := svc.DetectLanguage(context.Background(), "mausam kaisa hai")
	assert.NoError(t, err)
	assert.Equal(t, "hi", res.Language)
	assert.Equal(t, "mausam kaisa hai", res.Text)
}

func TestAssistTranslateToEnglish(t *testing.T) {
	svc := newTestAssistService(&scriptedLLM{fn: func(string) (string, error) { return "", nil }})

	res, err := svc.TranslateToEnglish(context.Background(), "namaste")
	assert.NoError(t, err)
	assert.Equal(t, "[en]namaste", res.Translated)
	assert.Equal(t, "en", res.TargetLang)
}

func TestAssistDetectIntent(t *testing.T) {
	svc := newTestAssistService(&scriptedLLM{fn: func(string) (string, error) { return "mandi_prices", nil }})

	res, err := svc.DetectIntent(context.Background(), "onion rate in pune")
	assert.NoError(t, err)
	assert.Equal(t, nlu.IntentMandiPrices, res.Intent)
}

func TestAssistSchemes(t *testing.T) {
	model := &scriptedLLM{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Rewritten Query:"):
			return "rewritten", nil
		case strings.Contains(prompt, "Compressed Content:"):
			return "compressed", nil
		default:
			return "scheme answer", nil
		}
	}}
	svc := newTestAssistService(model)

	res, err := svc.Schemes(context.Background(), "crop insurance scheme")
	assert.NoError(t, err)
	assert.Equal(t, "scheme answer", res.Answer)
	assert.Equal(t, "crop insurance scheme", res.Query)
}

func TestAssistMandiPricesUnknownLocation(t *testing.T) {
	// The locator cannot place the city, so the resolver answers without
	// ever calling the price API.
	svc := newTestAssistService(&scriptedLLM{fn: func(string) (string, error) {
		return `{"state": "Unknown", "district": "Unknown"}`, nil
	}})

	res, err := svc.MandiPrices(context.Background(), "Atlantis", "onion")
	assert.NoError(t, err)
	assert.Contains(t, res.Result, "Atlantis")
}
