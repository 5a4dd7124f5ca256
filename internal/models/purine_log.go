package models

import "time"

type TimeOfDay string

const (
	TimeOfDayBreakfast TimeOfDay = "breakfast"
	TimeOfDayLunch     TimeOfDay = "lunch"
	TimeOfDayDinner    TimeOfDay = "dinner"
	TimeOfDaySnack     TimeOfDay = "snack"
)

func (value TimeOfDay) Valid() bool {
	switch value {
	case TimeOfDayBreakfast, TimeOfDayLunch, TimeOfDayDinner, TimeOfDaySnack:
		return true
	default:
		return false
	}
}

// PurineIntakeLog binds a meal analysis to the occasion it was eaten. ID is
// the envelope's own identity; AnalysisID points at the analysis content.
type PurineIntakeLog struct {
	ID               string     `gorm:"primaryKey;type:text" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"-"`
	Timestamp        time.Time  `gorm:"not null;index" json:"timestamp"`
	TimeOfDay        TimeOfDay  `gorm:"not null" json:"timeOfDay"`
	AnalysisID       string     `gorm:"not null" json:"analysisId"`
	MealDescription  string     `gorm:"not null" json:"mealDescription"`
	TotalPurineScore int        `gorm:"not null" json:"totalPurineScore"`
	OverallRiskLevel RiskLevel  `gorm:"not null" json:"overallRiskLevel"`
	OverallSummary   string     `json:"overallSummary"`
	Items            []FoodItem `gorm:"serializer:json" json:"items"`
	Recommendations  string     `json:"recommendations"`
	Alternatives     []string   `gorm:"serializer:json" json:"alternatives"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func (entry PurineIntakeLog) Analysis() MealAnalysis {
	return MealAnalysis{
		ID:               entry.AnalysisID,
		MealDescription:  entry.MealDescription,
		TotalPurineScore: entry.TotalPurineScore,
		OverallRiskLevel: entry.OverallRiskLevel,
		OverallSummary:   entry.OverallSummary,
		Items:            entry.Items,
		Recommendations:  entry.Recommendations,
		Alternatives:     entry.Alternatives,
	}
}
