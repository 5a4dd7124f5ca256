package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/goutly/internal/models"
)

const HistoryCap = 50

var ErrInvalidAnalysis = errors.New("invalid meal analysis")

// ValidateMealAnalysis checks a client-supplied analysis against the same
// rules the strict parser enforces on service replies.
func ValidateMealAnalysis(analysis models.MealAnalysis) error {
	if strings.TrimSpace(analysis.ID) == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidAnalysis)
	}
	if strings.TrimSpace(analysis.MealDescription) == "" {
		return fmt.Errorf("%w: meal description is empty", ErrInvalidAnalysis)
	}
	if analysis.TotalPurineScore < models.MinPurineScore || analysis.TotalPurineScore > models.MaxPurineScore {
		return fmt.Errorf("%w: score out of range", ErrInvalidAnalysis)
	}
	if !analysis.OverallRiskLevel.Valid() {
		return fmt.Errorf("%w: unknown risk level", ErrInvalidAnalysis)
	}
	for _, item := range analysis.Items {
		if strings.TrimSpace(item.Name) == "" || !item.PurineLevel.Valid() {
			return fmt.Errorf("%w: invalid food item", ErrInvalidAnalysis)
		}
	}
	return nil
}

// AppendToHistory returns a new list with item at the front, any earlier
// entry with the same id removed, truncated to capacity. history is not modified.
func AppendToHistory(history []models.MealAnalysis, item models.MealAnalysis, capacity int) []models.MealAnalysis {
	if capacity <= 0 {
		capacity = HistoryCap
	}

	result := make([]models.MealAnalysis, 0, min(len(history)+1, capacity))
	result = append(result, item)
	for _, existing := range history {
		if len(result) == capacity {
			break
		}
		if existing.ID == item.ID {
			continue
		}
		result = append(result, existing)
	}
	return result
}

// ToggleFavorite removes item when a favorite with its id exists, otherwise
// prepends it. favorites is not modified.
func ToggleFavorite(favorites []models.MealAnalysis, item models.MealAnalysis) []models.MealAnalysis {
	if containsAnalysis(favorites, item.ID) {
		return DeleteFromHistory(favorites, item.ID)
	}

	result := make([]models.MealAnalysis, 0, len(favorites)+1)
	result = append(result, item)
	for _, existing := range favorites {
		if existing.ID != item.ID {
			result = append(result, existing)
		}
	}
	return result
}

// DeleteFromHistory returns list without the entry matching id. Unknown ids are a no-op.
func DeleteFromHistory(list []models.MealAnalysis, id string) []models.MealAnalysis {
	result := make([]models.MealAnalysis, 0, len(list))
	for _, existing := range list {
		if existing.ID != id {
			result = append(result, existing)
		}
	}
	return result
}

func FindAnalysis(list []models.MealAnalysis, id string) (models.MealAnalysis, bool) {
	for _, existing := range list {
		if existing.ID == id {
			return existing, true
		}
	}
	return models.MealAnalysis{}, false
}

func containsAnalysis(list []models.MealAnalysis, id string) bool {
	_, ok := FindAnalysis(list, id)
	return ok
}
