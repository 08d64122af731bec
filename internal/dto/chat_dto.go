package dto

// Chat API DTOs

type ChatRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatResponse struct {
	Answer           string `json:"answer"`
	DetectedIntent   string `json:"detected_intent"`
	DetectedLanguage string `json:"detected_language"`
}

type DetectLanguageResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TranslationResponse struct {
	Text       string `json:"text"`
	Translated string `json:"translated"`
	TargetLang string `json:"target_lang"`
}

type DetectIntentResponse struct {
	Query  string `json:"query"`
	Intent string `json:"intent"`
}

type WeatherResponse struct {
	City     string `json:"city"`
	Forecast string `json:"forecast"`
	Advisory string `json:"advisory"`
}

type MandiPricesResponse struct {
	City   string `json:"city"`
	Crop   string `json:"crop"`
	Result string `json:"result"`
}

type KnowledgeResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}
