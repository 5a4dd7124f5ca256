package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/terraincognita07/goutly/internal/models"
)

func analysisWithID(id string) models.MealAnalysis {
	return models.MealAnalysis{
		ID:               id,
		MealDescription:  "meal " + id,
		TotalPurineScore: 20,
		OverallRiskLevel: models.RiskLow,
	}
}

func analysisIDs(list []models.MealAnalysis) []string {
	ids := make([]string, 0, len(list))
	for _, item := range list {
		ids = append(ids, item.ID)
	}
	return ids
}

func equalIDs(left []string, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	for index := range left {
		if left[index] != right[index] {
			return false
		}
	}
	return true
}

func TestAppendToHistoryNeverExceedsCapOrDuplicates(t *testing.T) {
	history := []models.MealAnalysis{}
	for step := 0; step < 200; step++ {
		// ids repeat so that both the dedup and the cap paths are hit
		id := fmt.Sprintf("meal-%d", (step*7)%60)
		history = AppendToHistory(history, analysisWithID(id), HistoryCap)

		if len(history) > HistoryCap {
			t.Fatalf("step %d: len(history) = %d, want <= %d", step, len(history), HistoryCap)
		}
		seen := map[string]bool{}
		for _, item := range history {
			if seen[item.ID] {
				t.Fatalf("step %d: duplicate id %q in history", step, item.ID)
			}
			seen[item.ID] = true
		}
		if history[0].ID != id {
			t.Fatalf("step %d: history[0].ID = %q, want %q", step, history[0].ID, id)
		}
	}
}

func TestAppendToHistoryReplacesExistingAtFront(t *testing.T) {
	history := []models.MealAnalysis{analysisWithID("A"), analysisWithID("B"), analysisWithID("C")}
	replacement := analysisWithID("A")
	replacement.TotalPurineScore = 80

	got := AppendToHistory(history, replacement, HistoryCap)
	if ids := analysisIDs(got); !equalIDs(ids, []string{"A", "B", "C"}) {
		t.Fatalf("AppendToHistory() ids = %#v, want [A B C]", ids)
	}
	if got[0].TotalPurineScore != 80 {
		t.Fatalf("AppendToHistory() front score = %d, want replacement score 80", got[0].TotalPurineScore)
	}
	if history[0].TotalPurineScore != 20 {
		t.Fatalf("expected input history to stay untouched, got front score %d", history[0].TotalPurineScore)
	}
}

func TestAppendToHistoryMovesMiddleEntryToFront(t *testing.T) {
	history := []models.MealAnalysis{analysisWithID("A"), analysisWithID("B"), analysisWithID("C")}
	got := AppendToHistory(history, analysisWithID("B"), HistoryCap)
	if ids := analysisIDs(got); !equalIDs(ids, []string{"B", "A", "C"}) {
		t.Fatalf("AppendToHistory() ids = %#v, want [B A C]", ids)
	}
}

func TestAppendToHistoryTruncatesOldestAndDefaultsCap(t *testing.T) {
	history := []models.MealAnalysis{analysisWithID("A"), analysisWithID("B"), analysisWithID("C")}
	got := AppendToHistory(history, analysisWithID("D"), 3)
	if ids := analysisIDs(got); !equalIDs(ids, []string{"D", "A", "B"}) {
		t.Fatalf("AppendToHistory() ids = %#v, want [D A B]", ids)
	}

	full := make([]models.MealAnalysis, 0, HistoryCap)
	for index := 0; index < HistoryCap; index++ {
		full = append(full, analysisWithID(fmt.Sprintf("old-%d", index)))
	}
	got = AppendToHistory(full, analysisWithID("new"), 0)
	if len(got) != HistoryCap {
		t.Fatalf("AppendToHistory() with cap 0 len = %d, want %d", len(got), HistoryCap)
	}
	if got[len(got)-1].ID != fmt.Sprintf("old-%d", HistoryCap-2) {
		t.Fatalf("expected oldest entry to be dropped, last id = %q", got[len(got)-1].ID)
	}
}

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	starts := [][]models.MealAnalysis{
		{},
		{analysisWithID("A")},
		{analysisWithID("A"), analysisWithID("B"), analysisWithID("C")},
	}
	item := analysisWithID("X")

	for _, favorites := range starts {
		once := ToggleFavorite(favorites, item)
		if once[0].ID != "X" {
			t.Fatalf("ToggleFavorite() front id = %q, want X", once[0].ID)
		}
		twice := ToggleFavorite(once, item)
		if !equalIDs(analysisIDs(twice), analysisIDs(favorites)) {
			t.Fatalf("ToggleFavorite() twice = %#v, want %#v", analysisIDs(twice), analysisIDs(favorites))
		}
	}
}

func TestToggleFavoriteRemovesByID(t *testing.T) {
	favorites := []models.MealAnalysis{analysisWithID("A"), analysisWithID("B")}
	got := ToggleFavorite(favorites, analysisWithID("B"))
	if ids := analysisIDs(got); !equalIDs(ids, []string{"A"}) {
		t.Fatalf("ToggleFavorite() ids = %#v, want [A]", ids)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected input favorites to stay untouched, got len %d", len(favorites))
	}
}

func TestDeleteFromHistoryUnknownIDIsNoop(t *testing.T) {
	history := []models.MealAnalysis{analysisWithID("A"), analysisWithID("B")}

	got := DeleteFromHistory(history, "missing")
	if ids := analysisIDs(got); !equalIDs(ids, []string{"A", "B"}) {
		t.Fatalf("DeleteFromHistory() ids = %#v, want [A B]", ids)
	}

	got = DeleteFromHistory(history, "A")
	if ids := analysisIDs(got); !equalIDs(ids, []string{"B"}) {
		t.Fatalf("DeleteFromHistory() ids = %#v, want [B]", ids)
	}
}

func TestDeleteFromHistoryLeavesFavoritesAlone(t *testing.T) {
	item := analysisWithID("A")
	history := AppendToHistory(nil, item, HistoryCap)
	favorites := ToggleFavorite(nil, item)

	history = DeleteFromHistory(history, "A")
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %#v", analysisIDs(history))
	}
	if _, ok := FindAnalysis(favorites, "A"); !ok {
		t.Fatal("expected favorite to survive history deletion")
	}
}

func TestValidateMealAnalysis(t *testing.T) {
	valid := analysisWithID("A")
	valid.Items = []models.FoodItem{{Name: "anchovy", PurineLevel: models.PurineVeryHigh}}
	if err := ValidateMealAnalysis(valid); err != nil {
		t.Fatalf("ValidateMealAnalysis() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.MealAnalysis)
	}{
		{name: "empty id", mutate: func(a *models.MealAnalysis) { a.ID = " " }},
		{name: "empty description", mutate: func(a *models.MealAnalysis) { a.MealDescription = "" }},
		{name: "score above range", mutate: func(a *models.MealAnalysis) { a.TotalPurineScore = 101 }},
		{name: "negative score", mutate: func(a *models.MealAnalysis) { a.TotalPurineScore = -1 }},
		{name: "unknown risk", mutate: func(a *models.MealAnalysis) { a.OverallRiskLevel = "catastrophic" }},
		{name: "unnamed item", mutate: func(a *models.MealAnalysis) { a.Items[0].Name = "" }},
		{name: "unknown purine level", mutate: func(a *models.MealAnalysis) { a.Items[0].PurineLevel = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := valid
			analysis.Items = append([]models.FoodItem(nil), valid.Items...)
			tt.mutate(&analysis)
			if err := ValidateMealAnalysis(analysis); !errors.Is(err, ErrInvalidAnalysis) {
				t.Fatalf("expected ErrInvalidAnalysis, got %v", err)
			}
		})
	}
}
