package services

import "strings"

var defaultFallbackMessages = map[string]string{
	"fallback.compare":          "Sorry, the meals could not be compared right now. Please try again later.",
	"fallback.forecast.risk":    "Unknown",
	"fallback.forecast.summary": "No summary is available right now.",
	"fallback.forecast.detail":  "The forecast could not be generated. Please try again later.",
	"fallback.ideas":            "Meal ideas are unavailable right now. Please try again later.",
}

// translateOrDefault resolves key through translator and falls back to the
// built-in English text when the key is unknown there.
func translateOrDefault(translator Translator, language string, key string) string {
	if translator != nil {
		if value := strings.TrimSpace(translator.Translate(language, key)); value != "" && value != key {
			return value
		}
	}
	if value, ok := defaultFallbackMessages[key]; ok {
		return value
	}
	return key
}
