package translate

import (
	"context"
	"log"
	"strings"
)

// LangEnglish is the pipeline's normalized language.
const LangEnglish = "en"

// Gateway wraps a Provider with the fail-soft policy used at the pipeline
// boundary: a detection failure degrades to English, a translation failure
// degrades to the untranslated input. Callers never see a provider error,
// only its WARN log.
type Gateway struct {
	provider Provider
	logger   *log.Logger
}

func NewGateway(provider Provider, logger *log.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		logger:   logger,
	}
}

// Detect returns the language code of text, or "en" if the provider fails.
func (g *Gateway) Detect(ctx context.Context, text string) string {
	lang, err := g.provider.Detect(ctx, text)
	if err != nil {
		g.logger.Printf("[WARN] Language detection failed, assuming %q: %v", LangEnglish, err)
		return LangEnglish
	}
	return strings.ToLower(lang)
}

// Translate converts text to targetLang, or returns text unchanged if the
// provider fails.
func (g *Gateway) Translate(ctx context.Context, text, targetLang string) string {
	translated, err := g.provider.Translate(ctx, text, targetLang)
	if err != nil {
		g.logger.Printf("[WARN] Translation to %q failed, passing text through: %v", targetLang, err)
		return text
	}
	return translated
}
