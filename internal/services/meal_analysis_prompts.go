package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/goutly/internal/models"
)

const textAnalysisInstruction = `You are a clinical dietitian specialised in gout and hyperuricemia.
Analyse the meal the user describes for purine content.
Identify each food, classify its purine level as low, medium, high or very_high and estimate its purine amount per 100g.
Give the whole meal a totalPurineScore from 0 to 100 and an overallRiskLevel: low below 40, caution from 40 to 74, high from 75.
Suggest up to three lower-purine alternatives.
Write every free-text field in the language of the user's description.
Return only the JSON document described by the response schema, without markdown.`

const imageAnalysisInstruction = `You are a clinical dietitian specialised in gout and hyperuricemia.
Identify the foods visible in the meal photo and analyse them for purine content.
Describe the meal in one short sentence in mealDescription.
Classify each food's purine level as low, medium, high or very_high and estimate its purine amount per 100g.
Give the whole meal a totalPurineScore from 0 to 100 and an overallRiskLevel: low below 40, caution from 40 to 74, high from 75.
Suggest up to three lower-purine alternatives.
If the user adds a caption, write free-text fields in the caption's language, otherwise in Korean.
Return only the JSON document described by the response schema, without markdown.`

const compareInstruction = `You are a clinical dietitian specialised in gout.
Compare the meals below for gout risk and recommend the safest choice in three to five sentences of plain text.`

func buildTextAnalysisPrompt(description string, analysisContext *AnalysisContext) string {
	var builder strings.Builder
	builder.WriteString("MEAL:\n")
	builder.WriteString(description)
	builder.WriteString("\n")
	writeIntakeContext(&builder, analysisContext)
	return builder.String()
}

func buildImageAnalysisPrompt(caption string, labels []string, analysisContext *AnalysisContext) string {
	var builder strings.Builder
	builder.WriteString("Analyse the attached meal photo.\n")
	if caption != "" {
		builder.WriteString("USER CAPTION:\n")
		builder.WriteString(caption)
		builder.WriteString("\n")
	}
	if len(labels) > 0 {
		fmt.Fprintf(&builder, "DETECTED LABELS (may be imprecise): %s\n", strings.Join(labels, ", "))
	}
	writeIntakeContext(&builder, analysisContext)
	return builder.String()
}

func writeIntakeContext(builder *strings.Builder, analysisContext *AnalysisContext) {
	if analysisContext == nil {
		return
	}
	builder.WriteString("\nDAILY CONTEXT:\n")
	fmt.Fprintf(builder, "- Daily purine goal: %d\n", analysisContext.DailyGoal)
	fmt.Fprintf(builder, "- Consumed so far today: %d\n", analysisContext.ConsumedSoFar)
	if remaining := analysisContext.DailyGoal - analysisContext.ConsumedSoFar; remaining >= 0 {
		fmt.Fprintf(builder, "- Remaining budget: %d\n", remaining)
	} else {
		fmt.Fprintf(builder, "- Already over budget by: %d\n", -remaining)
	}
	builder.WriteString("Mention in recommendations how this meal fits the remaining budget.\n")
}

// buildComparePrompt sends only the summary of each meal, never the item breakdown.
func buildComparePrompt(meals []models.MealAnalysis, language string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Answer in %s.\n\nMEALS:\n", languageName(language))
	for index, meal := range meals {
		fmt.Fprintf(&builder, "%d. id=%s score=%d risk=%s description=%q\n",
			index+1,
			meal.ID,
			meal.TotalPurineScore,
			meal.OverallRiskLevel,
			meal.MealDescription,
		)
	}
	return builder.String()
}

func languageName(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "en":
		return "English"
	default:
		return "Korean"
	}
}
