package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/goutly/internal/models"
)

var (
	ErrInvalidTimeOfDay      = errors.New("invalid time of day")
	ErrInvalidIntakeEntry    = errors.New("invalid intake entry")
	ErrIntakeLogNotFound     = errors.New("intake log not found")
	ErrIntakeLogLoadFailed   = errors.New("load intake logs failed")
	ErrIntakeLogSaveFailed   = errors.New("save intake log failed")
	ErrIntakeLogDeleteFailed = errors.New("delete intake log failed")
)

type IntakeLogRepository interface {
	Create(entry *models.PurineIntakeLog) error
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PurineIntakeLog, error)
	DeleteByUserAndID(userID uint, id string) (bool, error)
}

type IntakeUserReader interface {
	FindByID(userID uint) (models.User, error)
}

type IntakeService struct {
	logs  IntakeLogRepository
	users IntakeUserReader
	now   func() time.Time
}

func NewIntakeService(logs IntakeLogRepository, users IntakeUserReader) *IntakeService {
	return &IntakeService{
		logs:  logs,
		users: users,
		now:   time.Now,
	}
}

// LogMeal records analysis as eaten at timestamp (now when zero). Every call
// creates a new envelope id, even for the same analysis.
func (service *IntakeService) LogMeal(userID uint, analysis models.MealAnalysis, timeOfDay models.TimeOfDay, timestamp time.Time) (models.PurineIntakeLog, error) {
	timeOfDay = models.TimeOfDay(strings.ToLower(strings.TrimSpace(string(timeOfDay))))
	if !timeOfDay.Valid() {
		return models.PurineIntakeLog{}, ErrInvalidTimeOfDay
	}
	if err := validateLoggedAnalysis(analysis); err != nil {
		return models.PurineIntakeLog{}, err
	}
	if timestamp.IsZero() {
		timestamp = service.now()
	}

	entry := models.PurineIntakeLog{
		ID:               uuid.NewString(),
		UserID:           userID,
		Timestamp:        timestamp,
		TimeOfDay:        timeOfDay,
		AnalysisID:       analysis.ID,
		MealDescription:  analysis.MealDescription,
		TotalPurineScore: analysis.TotalPurineScore,
		OverallRiskLevel: analysis.OverallRiskLevel,
		OverallSummary:   analysis.OverallSummary,
		Items:            nonNilItems(analysis.Items),
		Recommendations:  analysis.Recommendations,
		Alternatives:     nonNilStrings(analysis.Alternatives),
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.PurineIntakeLog{}, fmt.Errorf("%w: %v", ErrIntakeLogSaveFailed, err)
	}
	return entry, nil
}

func (service *IntakeService) ListForDay(userID uint, day time.Time, location *time.Location) ([]models.PurineIntakeLog, error) {
	dayStart, dayEnd := DayRange(day, location)
	entries, err := service.logs.ListByUserRange(userID, &dayStart, &dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntakeLogLoadFailed, err)
	}
	return entries, nil
}

func (service *IntakeService) ListForRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.PurineIntakeLog, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, location)
		toEnd = &end
	}
	entries, err := service.logs.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntakeLogLoadFailed, err)
	}
	return entries, nil
}

func (service *IntakeService) DeleteEntry(userID uint, id string) error {
	deleted, err := service.logs.DeleteByUserAndID(userID, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIntakeLogDeleteFailed, err)
	}
	if !deleted {
		return ErrIntakeLogNotFound
	}
	return nil
}

// DailyBudget aggregates the user's entries for day against their configured goal.
func (service *IntakeService) DailyBudget(userID uint, day time.Time, location *time.Location) (DailyPurineBudget, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return DailyPurineBudget{}, err
	}
	entries, err := service.ListForDay(userID, day, location)
	if err != nil {
		return DailyPurineBudget{}, err
	}
	return ComputeDailyBudget(entries, day, EffectivePurineGoal(user), location), nil
}

func EffectivePurineGoal(user models.User) int {
	if user.DailyPurineGoal <= 0 {
		return models.DefaultDailyPurineGoal
	}
	return user.DailyPurineGoal
}

func validateLoggedAnalysis(analysis models.MealAnalysis) error {
	if err := ValidateMealAnalysis(analysis); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIntakeEntry, err)
	}
	return nil
}

func nonNilItems(items []models.FoodItem) []models.FoodItem {
	if items == nil {
		return []models.FoodItem{}
	}
	return items
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
