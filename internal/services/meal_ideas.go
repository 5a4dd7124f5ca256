package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/gemini"
)

const mealIdeasInstruction = `You are a clinical dietitian specialised in gout.
Suggest three low-purine meal ideas that fit the remaining purine budget.
For each idea give a name and one sentence on why it is gout friendly. Plain text only.`

// SuggestMealIdeas returns free-text ideas, or the localized fallback when
// the service fails or answers with nothing.
func (service *MealAnalysisService) SuggestMealIdeas(ctx context.Context, remainingBudget int, preferences string, language string) string {
	started := service.now()
	request := gemini.Request{
		SystemInstruction: gemini.SystemText(mealIdeasInstruction),
		Contents: []gemini.Content{
			gemini.UserContent(gemini.TextPart(buildMealIdeasPrompt(remainingBudget, preferences, language))),
		},
	}

	text, err := service.generator.GenerateContent(ctx, request)
	if err != nil {
		service.logger.WithFields(logrus.Fields{"kind": AnalysisKindIdeas, "error": err}).Warn("meal ideas request failed")
		service.observe(AnalysisKindIdeas, OutcomeFallback, started)
		return service.fallback(language, "fallback.ideas")
	}
	ideas := strings.TrimSpace(text)
	if ideas == "" {
		service.observe(AnalysisKindIdeas, OutcomeFallback, started)
		return service.fallback(language, "fallback.ideas")
	}
	service.observe(AnalysisKindIdeas, OutcomeSuccess, started)
	return ideas
}

func buildMealIdeasPrompt(remainingBudget int, preferences string, language string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Answer in %s.\n", languageName(language))
	if remainingBudget < 0 {
		fmt.Fprintf(&builder, "The user is already over today's purine budget by %d; favour the lowest-purine options.\n", -remainingBudget)
	} else {
		fmt.Fprintf(&builder, "Remaining purine budget today: %d\n", remainingBudget)
	}
	if preferences = strings.TrimSpace(preferences); preferences != "" {
		builder.WriteString("PREFERENCES:\n")
		builder.WriteString(preferences)
		builder.WriteString("\n")
	}
	return builder.String()
}
