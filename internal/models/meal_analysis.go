package models

import "time"

type PurineLevel string

const (
	PurineLow      PurineLevel = "low"
	PurineMedium   PurineLevel = "medium"
	PurineHigh     PurineLevel = "high"
	PurineVeryHigh PurineLevel = "very_high"
)

func (level PurineLevel) Valid() bool {
	switch level {
	case PurineLow, PurineMedium, PurineHigh, PurineVeryHigh:
		return true
	default:
		return false
	}
}

// RiskLevel is the single canonical risk classification. Display strings
// for it live in the locale files, never in stored data.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskCaution RiskLevel = "caution"
	RiskHigh    RiskLevel = "high"
)

func (level RiskLevel) Valid() bool {
	switch level {
	case RiskLow, RiskCaution, RiskHigh:
		return true
	default:
		return false
	}
}

const (
	MinPurineScore = 0
	MaxPurineScore = 100
)

type FoodItem struct {
	Name                 string      `json:"name"`
	PurineLevel          PurineLevel `json:"purineLevel"`
	PurineAmountEstimate string      `json:"purineAmountEstimate"`
	Explanation          string      `json:"explanation"`
}

type MealAnalysis struct {
	ID               string     `json:"id"`
	MealDescription  string     `json:"mealDescription"`
	TotalPurineScore int        `json:"totalPurineScore"`
	OverallRiskLevel RiskLevel  `json:"overallRiskLevel"`
	OverallSummary   string     `json:"overallSummary"`
	Items            []FoodItem `json:"items"`
	Recommendations  string     `json:"recommendations"`
	Alternatives     []string   `json:"alternatives"`
	AnalyzedAt       time.Time  `json:"analyzedAt"`
}
