package services

import (
	"time"

	"github.com/terraincognita07/goutly/internal/models"
)

type BudgetStatus string

const (
	BudgetUnder       BudgetStatus = "under"
	BudgetApproaching BudgetStatus = "approaching"
	BudgetOver        BudgetStatus = "over"
)

type DailyPurineBudget struct {
	Day           time.Time    `json:"day"`
	ConsumedTotal int          `json:"consumedTotal"`
	Goal          int          `json:"goal"`
	Status        BudgetStatus `json:"status"`
	Entries       int          `json:"entries"`
	Remaining     int          `json:"remaining"`
}

// ComputeDailyBudget sums the scores of entries eaten on day (calendar day in
// location) and classifies the total against goal.
func ComputeDailyBudget(entries []models.PurineIntakeLog, day time.Time, goal int, location *time.Location) DailyPurineBudget {
	dayStart, dayEnd := DayRange(day, location)

	total := 0
	matched := 0
	for _, entry := range entries {
		if entry.Timestamp.Before(dayStart) || !entry.Timestamp.Before(dayEnd) {
			continue
		}
		total += entry.TotalPurineScore
		matched++
	}

	return DailyPurineBudget{
		Day:           dayStart,
		ConsumedTotal: total,
		Goal:          goal,
		Status:        ClassifyBudget(total, goal),
		Entries:       matched,
		Remaining:     goal - total,
	}
}

// ClassifyBudget applies the 75% threshold in integer arithmetic so that
// total == goal stays approaching. Without a positive goal any intake is over.
func ClassifyBudget(total int, goal int) BudgetStatus {
	if goal <= 0 {
		if total <= 0 {
			return BudgetUnder
		}
		return BudgetOver
	}
	switch {
	case 4*total <= 3*goal:
		return BudgetUnder
	case total <= goal:
		return BudgetApproaching
	default:
		return BudgetOver
	}
}
