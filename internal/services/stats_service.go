package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/goutly/internal/models"
)

const MaxTrendDays = 366

var ErrStatsRangeInvalid = errors.New("stats invalid range")

type StatsLogReader interface {
	ListForRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.PurineIntakeLog, error)
}

type StatsService struct {
	logs  StatsLogReader
	users IntakeUserReader
}

type PurineTrendPoint struct {
	Date    string       `json:"date"`
	Total   int          `json:"total"`
	Entries int          `json:"entries"`
	Status  BudgetStatus `json:"status"`
}

type PurineTrend struct {
	Goal         int                `json:"goal"`
	Points       []PurineTrendPoint `json:"points"`
	Average      float64            `json:"average"`
	LoggedDays   int                `json:"loggedDays"`
	OverGoalDays int                `json:"overGoalDays"`
	HighestTotal int                `json:"highestTotal"`
}

func NewStatsService(logs StatsLogReader, users IntakeUserReader) *StatsService {
	return &StatsService{
		logs:  logs,
		users: users,
	}
}

// BuildPurineTrend returns one point per calendar day in [from, to], zero
// filled. Average is taken over logged days only.
func (service *StatsService) BuildPurineTrend(userID uint, from time.Time, to time.Time, location *time.Location) (PurineTrend, error) {
	fromDay := DateAtLocation(from, location)
	toDay := DateAtLocation(to, location)
	if toDay.Before(fromDay) || toDay.Sub(fromDay) > MaxTrendDays*24*time.Hour {
		return PurineTrend{}, ErrStatsRangeInvalid
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return PurineTrend{}, err
	}
	logs, err := service.logs.ListForRange(userID, &fromDay, &toDay, location)
	if err != nil {
		return PurineTrend{}, err
	}

	return BuildPurineTrend(logs, fromDay, toDay, EffectivePurineGoal(user), location), nil
}

func BuildPurineTrend(logs []models.PurineIntakeLog, fromDay time.Time, toDay time.Time, goal int, location *time.Location) PurineTrend {
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, logEntry := range logs {
		key := DateAtLocation(logEntry.Timestamp, location).Format(exportDateLayout)
		totals[key] += logEntry.TotalPurineScore
		counts[key]++
	}

	trend := PurineTrend{Goal: goal, Points: make([]PurineTrendPoint, 0)}
	sum := 0
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(exportDateLayout)
		point := PurineTrendPoint{
			Date:    key,
			Total:   totals[key],
			Entries: counts[key],
			Status:  ClassifyBudget(totals[key], goal),
		}
		trend.Points = append(trend.Points, point)

		if point.Entries == 0 {
			continue
		}
		trend.LoggedDays++
		sum += point.Total
		if point.Status == BudgetOver {
			trend.OverGoalDays++
		}
		if point.Total > trend.HighestTotal {
			trend.HighestTotal = point.Total
		}
	}
	if trend.LoggedDays > 0 {
		trend.Average = float64(sum) / float64(trend.LoggedDays)
	}
	return trend
}
