package services

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/gemini"
	"github.com/terraincognita07/goutly/internal/models"
)

const (
	forecastRiskLabel     = "RISK_LEVEL:"
	forecastSummaryLabel  = "SUMMARY:"
	forecastForecastLabel = "FORECAST:"
)

const forecastInstruction = `You are a clinical dietitian specialised in gout.
From the user's recent purine intake and notes, forecast today's risk of a gout flare.
Answer with exactly three lines and nothing else:
RISK_LEVEL: low, caution or high
SUMMARY: one sentence
FORECAST: two to four sentences of practical advice for today`

type ForecastInput struct {
	Language      string
	Today         time.Time
	DailyGoal     int
	RecentBudgets []DailyPurineBudget
	Notes         string
}

// Forecast is the parsed daily forecast. Each field falls back independently
// when its line is missing. Level is set only when the risk line names a
// known risk level.
type Forecast struct {
	RiskLevel string           `json:"riskLevel"`
	Level     models.RiskLevel `json:"level,omitempty"`
	Summary   string           `json:"summary"`
	Forecast  string           `json:"forecast"`
	Available bool             `json:"available"`
}

// GenerateForecast never fails: transport errors degrade to the localized
// fallback forecast with Available=false.
func (service *MealAnalysisService) GenerateForecast(ctx context.Context, input ForecastInput) Forecast {
	started := service.now()
	request := gemini.Request{
		SystemInstruction: gemini.SystemText(forecastInstruction),
		Contents: []gemini.Content{
			gemini.UserContent(gemini.TextPart(buildForecastPrompt(input))),
		},
	}

	text, err := service.generator.GenerateContent(ctx, request)
	if err != nil {
		service.logger.WithFields(logrus.Fields{"kind": AnalysisKindForecast, "error": err}).Warn("forecast request failed")
		service.observe(AnalysisKindForecast, OutcomeFallback, started)
		return Forecast{
			RiskLevel: service.fallback(input.Language, "fallback.forecast.risk"),
			Summary:   service.fallback(input.Language, "fallback.forecast.summary"),
			Forecast:  service.fallback(input.Language, "fallback.forecast.detail"),
		}
	}

	forecast := ParseForecast(text, func(key string) string {
		return service.fallback(input.Language, key)
	})
	service.observe(AnalysisKindForecast, OutcomeSuccess, started)
	return forecast
}

// ParseForecast locates each labelled line independently. fallback is
// called with the fallback.forecast.* key of every missing field.
func ParseForecast(text string, fallback func(key string) string) Forecast {
	values := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimLeft(line, "-*•# \t")
		line = strings.ReplaceAll(line, "**", "")
		for _, label := range []string{forecastRiskLabel, forecastSummaryLabel, forecastForecastLabel} {
			if _, seen := values[label]; seen {
				continue
			}
			if len(line) >= len(label) && strings.EqualFold(line[:len(label)], label) {
				if value := strings.TrimSpace(line[len(label):]); value != "" {
					values[label] = value
				}
			}
		}
	}

	forecast := Forecast{Available: true}
	if value, ok := values[forecastRiskLabel]; ok {
		forecast.RiskLevel = value
		level := models.RiskLevel(strings.ToLower(strings.Trim(value, " .")))
		if level.Valid() {
			forecast.Level = level
		}
	} else {
		forecast.RiskLevel = fallback("fallback.forecast.risk")
	}
	if value, ok := values[forecastSummaryLabel]; ok {
		forecast.Summary = value
	} else {
		forecast.Summary = fallback("fallback.forecast.summary")
	}
	if value, ok := values[forecastForecastLabel]; ok {
		forecast.Forecast = value
	} else {
		forecast.Forecast = fallback("fallback.forecast.detail")
	}
	return forecast
}

func buildForecastPrompt(input ForecastInput) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Answer the SUMMARY and FORECAST lines in %s. Keep the labels in English.\n", languageName(input.Language))
	if !input.Today.IsZero() {
		fmt.Fprintf(&builder, "Today: %s\n", input.Today.Format("2006-01-02"))
	}
	fmt.Fprintf(&builder, "Daily purine goal: %d\n", input.DailyGoal)
	if len(input.RecentBudgets) == 0 {
		builder.WriteString("No meals were logged recently.\n")
	} else {
		builder.WriteString("RECENT DAYS:\n")
		for _, budget := range input.RecentBudgets {
			fmt.Fprintf(&builder, "- %s: total %d of %d (%s, %d meals)\n",
				budget.Day.Format("2006-01-02"),
				budget.ConsumedTotal,
				budget.Goal,
				budget.Status,
				budget.Entries,
			)
		}
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		builder.WriteString("NOTES:\n")
		builder.WriteString(notes)
		builder.WriteString("\n")
	}
	return builder.String()
}
