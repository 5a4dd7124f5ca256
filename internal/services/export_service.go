package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/goutly/internal/models"
)

const (
	exportDateLayout = "2006-01-02"
	exportTimeLayout = "15:04"
)

var ExportCSVHeaders = []string{
	"Date",
	"Time",
	"Time of day",
	"Meal",
	"Purine score",
	"Risk level",
	"Foods",
	"Summary",
	"Recommendations",
	"Alternatives",
}

type ExportLogReader interface {
	ListForRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.PurineIntakeLog, error)
}

type ExportService struct {
	logs ExportLogReader
}

type ExportSummary struct {
	TotalEntries int    `json:"totalEntries"`
	HasData      bool   `json:"hasData"`
	DateFrom     string `json:"dateFrom"`
	DateTo       string `json:"dateTo"`
	TotalPurine  int    `json:"totalPurine"`
}

type ExportFoodItem struct {
	Name         string `json:"name"`
	PurineLevel  string `json:"purine_level"`
	PurineAmount string `json:"purine_amount"`
}

type ExportJSONEntry struct {
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	TimeOfDay        string           `json:"time_of_day"`
	Meal             string           `json:"meal"`
	TotalPurineScore int              `json:"total_purine_score"`
	RiskLevel        string           `json:"risk_level"`
	Items            []ExportFoodItem `json:"items"`
	Summary          string           `json:"summary"`
	Recommendations  string           `json:"recommendations"`
	Alternatives     []string         `json:"alternatives"`
}

type ExportCSVRow struct {
	Date             string
	Time             string
	TimeOfDay        string
	Meal             string
	TotalPurineScore int
	RiskLevel        string
	Foods            []string
	Summary          string
	Recommendations  string
	Alternatives     []string
}

func NewExportService(logs ExportLogReader) *ExportService {
	return &ExportService{logs: logs}
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time, location *time.Location) (ExportSummary, error) {
	logs, err := service.logs.ListForRange(userID, from, to, location)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(logs) == 0 {
		return ExportSummary{}, nil
	}

	first := logs[0].Timestamp
	last := logs[0].Timestamp
	total := 0
	for _, logEntry := range logs {
		if logEntry.Timestamp.Before(first) {
			first = logEntry.Timestamp
		}
		if logEntry.Timestamp.After(last) {
			last = logEntry.Timestamp
		}
		total += logEntry.TotalPurineScore
	}

	return ExportSummary{
		TotalEntries: len(logs),
		HasData:      true,
		DateFrom:     DateAtLocation(first, location).Format(exportDateLayout),
		DateTo:       DateAtLocation(last, location).Format(exportDateLayout),
		TotalPurine:  total,
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]ExportJSONEntry, error) {
	logs, err := service.logs.ListForRange(userID, from, to, location)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportJSONEntry, 0, len(logs))
	for _, logEntry := range logs {
		items := make([]ExportFoodItem, 0, len(logEntry.Items))
		for _, item := range logEntry.Items {
			items = append(items, ExportFoodItem{
				Name:         item.Name,
				PurineLevel:  string(item.PurineLevel),
				PurineAmount: item.PurineAmountEstimate,
			})
		}
		localized := logEntry.Timestamp.In(exportLocation(location))
		entries = append(entries, ExportJSONEntry{
			Date:             localized.Format(exportDateLayout),
			Time:             localized.Format(exportTimeLayout),
			TimeOfDay:        string(logEntry.TimeOfDay),
			Meal:             logEntry.MealDescription,
			TotalPurineScore: logEntry.TotalPurineScore,
			RiskLevel:        string(logEntry.OverallRiskLevel),
			Items:            items,
			Summary:          logEntry.OverallSummary,
			Recommendations:  logEntry.Recommendations,
			Alternatives:     nonNilStrings(logEntry.Alternatives),
		})
	}
	return entries, nil
}

func (service *ExportService) BuildCSVRows(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]ExportCSVRow, error) {
	logs, err := service.logs.ListForRange(userID, from, to, location)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(logs))
	for _, logEntry := range logs {
		foods := make([]string, 0, len(logEntry.Items))
		for _, item := range logEntry.Items {
			foods = append(foods, item.Name+" ("+string(item.PurineLevel)+")")
		}
		localized := logEntry.Timestamp.In(exportLocation(location))
		rows = append(rows, ExportCSVRow{
			Date:             localized.Format(exportDateLayout),
			Time:             localized.Format(exportTimeLayout),
			TimeOfDay:        csvTimeOfDayLabel(logEntry.TimeOfDay),
			Meal:             logEntry.MealDescription,
			TotalPurineScore: logEntry.TotalPurineScore,
			RiskLevel:        csvRiskLabel(logEntry.OverallRiskLevel),
			Foods:            foods,
			Summary:          logEntry.OverallSummary,
			Recommendations:  logEntry.Recommendations,
			Alternatives:     logEntry.Alternatives,
		})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Date,
		row.Time,
		row.TimeOfDay,
		row.Meal,
		strconv.Itoa(row.TotalPurineScore),
		row.RiskLevel,
		strings.Join(row.Foods, "; "),
		row.Summary,
		row.Recommendations,
		strings.Join(row.Alternatives, "; "),
	}
}

func exportLocation(location *time.Location) *time.Location {
	if location == nil {
		return time.UTC
	}
	return location
}

func csvTimeOfDayLabel(value models.TimeOfDay) string {
	switch value {
	case models.TimeOfDayBreakfast:
		return "Breakfast"
	case models.TimeOfDayLunch:
		return "Lunch"
	case models.TimeOfDayDinner:
		return "Dinner"
	case models.TimeOfDaySnack:
		return "Snack"
	default:
		return ""
	}
}

func csvRiskLabel(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return "Low"
	case models.RiskCaution:
		return "Caution"
	case models.RiskHigh:
		return "High"
	default:
		return ""
	}
}
