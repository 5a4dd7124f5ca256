package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/terraincognita07/goutly/internal/models"
)

type wireFoodItem struct {
	FoodName     *string `json:"foodName"`
	PurineLevel  *string `json:"purineLevel"`
	PurineAmount *string `json:"purineAmount"`
	Explanation  *string `json:"explanation"`
}

type wireMealAnalysis struct {
	MealDescription  *string          `json:"mealDescription"`
	TotalPurineScore *json.RawMessage `json:"totalPurineScore"`
	OverallRiskLevel *string          `json:"overallRiskLevel"`
	OverallSummary   *string          `json:"overallSummary"`
	Items            *[]wireFoodItem  `json:"items"`
	Recommendations  *string          `json:"recommendations"`
	Alternatives     *[]string        `json:"alternatives"`
}

// ParseMealAnalysis validates a service reply against the meal analysis
// schema. Any deviation yields an error wrapping ErrMalformedResponse and a
// zero MealAnalysis. The returned value has no ID yet.
func ParseMealAnalysis(raw []byte) (models.MealAnalysis, error) {
	payload := stripCodeFence(raw)
	if len(payload) == 0 {
		return models.MealAnalysis{}, malformed("empty body")
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()

	wire := wireMealAnalysis{}
	if err := decoder.Decode(&wire); err != nil {
		return models.MealAnalysis{}, malformed("decode: %v", err)
	}
	if decoder.More() {
		return models.MealAnalysis{}, malformed("trailing data after json document")
	}

	switch {
	case wire.MealDescription == nil:
		return models.MealAnalysis{}, malformed("missing mealDescription")
	case wire.TotalPurineScore == nil:
		return models.MealAnalysis{}, malformed("missing totalPurineScore")
	case wire.OverallRiskLevel == nil:
		return models.MealAnalysis{}, malformed("missing overallRiskLevel")
	case wire.OverallSummary == nil:
		return models.MealAnalysis{}, malformed("missing overallSummary")
	case wire.Items == nil:
		return models.MealAnalysis{}, malformed("missing items")
	case wire.Recommendations == nil:
		return models.MealAnalysis{}, malformed("missing recommendations")
	}

	score, err := parsePurineScore(*wire.TotalPurineScore)
	if err != nil {
		return models.MealAnalysis{}, err
	}

	risk := models.RiskLevel(strings.TrimSpace(*wire.OverallRiskLevel))
	if !risk.Valid() {
		return models.MealAnalysis{}, malformed("unknown overallRiskLevel %q", *wire.OverallRiskLevel)
	}

	items := make([]models.FoodItem, 0, len(*wire.Items))
	for index, item := range *wire.Items {
		parsed, err := parseFoodItem(index, item)
		if err != nil {
			return models.MealAnalysis{}, err
		}
		items = append(items, parsed)
	}

	alternatives := []string{}
	if wire.Alternatives != nil {
		for _, alternative := range *wire.Alternatives {
			if trimmed := strings.TrimSpace(alternative); trimmed != "" {
				alternatives = append(alternatives, trimmed)
			}
		}
	}

	return models.MealAnalysis{
		MealDescription:  strings.TrimSpace(*wire.MealDescription),
		TotalPurineScore: score,
		OverallRiskLevel: risk,
		OverallSummary:   strings.TrimSpace(*wire.OverallSummary),
		Items:            items,
		Recommendations:  strings.TrimSpace(*wire.Recommendations),
		Alternatives:     alternatives,
	}, nil
}

// parsePurineScore accepts only a JSON number; quoted numbers are rejected.
func parsePurineScore(raw json.RawMessage) (int, error) {
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, malformed("totalPurineScore is not a number: %s", raw)
	}
	if math.IsNaN(value) || value != math.Trunc(value) {
		return 0, malformed("totalPurineScore is not an integer: %s", raw)
	}
	if value < models.MinPurineScore || value > models.MaxPurineScore {
		return 0, malformed("totalPurineScore %s out of range", raw)
	}
	return int(value), nil
}

func parseFoodItem(index int, item wireFoodItem) (models.FoodItem, error) {
	if item.FoodName == nil || strings.TrimSpace(*item.FoodName) == "" {
		return models.FoodItem{}, malformed("items[%d] has no foodName", index)
	}
	if item.PurineLevel == nil {
		return models.FoodItem{}, malformed("items[%d] has no purineLevel", index)
	}
	level := models.PurineLevel(strings.TrimSpace(*item.PurineLevel))
	if !level.Valid() {
		return models.FoodItem{}, malformed("items[%d] has unknown purineLevel %q", index, *item.PurineLevel)
	}
	if item.PurineAmount == nil {
		return models.FoodItem{}, malformed("items[%d] has no purineAmount", index)
	}
	if item.Explanation == nil {
		return models.FoodItem{}, malformed("items[%d] has no explanation", index)
	}

	return models.FoodItem{
		Name:                 strings.TrimSpace(*item.FoodName),
		PurineLevel:          level,
		PurineAmountEstimate: strings.TrimSpace(*item.PurineAmount),
		Explanation:          strings.TrimSpace(*item.Explanation),
	}, nil
}

// stripCodeFence removes a surrounding markdown fence the model sometimes
// emits despite the json response type.
func stripCodeFence(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return trimmed
	}
	trimmed = bytes.TrimPrefix(trimmed, []byte("```"))
	if newline := bytes.IndexByte(trimmed, '\n'); newline >= 0 {
		trimmed = trimmed[newline+1:]
	} else {
		trimmed = bytes.TrimPrefix(trimmed, []byte("json"))
	}
	trimmed = bytes.TrimSpace(trimmed)
	trimmed = bytes.TrimSuffix(trimmed, []byte("```"))
	return bytes.TrimSpace(trimmed)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
