package services

import (
	"github.com/terraincognita07/goutly/internal/gemini"
	"github.com/terraincognita07/goutly/internal/models"
)

// MealAnalysisSchema is the response schema requested from the generative
// service for text and image analyses.
func MealAnalysisSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"mealDescription": {Type: gemini.TypeString, Description: "Short description of the whole meal."},
			"totalPurineScore": {
				Type:        gemini.TypeInteger,
				Description: "Overall purine risk score from 0 (none) to 100 (very high).",
			},
			"overallRiskLevel": {
				Type: gemini.TypeString,
				Enum: []string{string(models.RiskLow), string(models.RiskCaution), string(models.RiskHigh)},
			},
			"overallSummary": {Type: gemini.TypeString},
			"items": {
				Type: gemini.TypeArray,
				Items: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"foodName": {Type: gemini.TypeString},
						"purineLevel": {
							Type: gemini.TypeString,
							Enum: []string{
								string(models.PurineLow),
								string(models.PurineMedium),
								string(models.PurineHigh),
								string(models.PurineVeryHigh),
							},
						},
						"purineAmount": {Type: gemini.TypeString, Description: "Estimate such as 50-100mg/100g."},
						"explanation":  {Type: gemini.TypeString},
					},
					Required: []string{"foodName", "purineLevel", "purineAmount", "explanation"},
				},
			},
			"recommendations": {Type: gemini.TypeString},
			"alternatives": {
				Type:        gemini.TypeArray,
				Description: "Up to three lower-purine substitutes.",
				Items:       &gemini.Schema{Type: gemini.TypeString},
			},
		},
		Required: []string{
			"mealDescription",
			"totalPurineScore",
			"overallRiskLevel",
			"overallSummary",
			"items",
			"recommendations",
			"alternatives",
		},
	}
}
