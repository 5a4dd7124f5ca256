package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/goutly/internal/models"
)

var (
	ErrCollectionLoadFailed = errors.New("load collection failed")
	ErrCollectionSaveFailed = errors.New("save collection failed")
	ErrAnalysisNotFound     = errors.New("analysis not found")
)

// KVStore is the per-user key-value persistence surface. Values are JSON-serializable.
type KVStore interface {
	Get(userID uint, key string, dst any) (bool, error)
	Set(userID uint, key string, value any) error
	Delete(userID uint, key string) error
}

// CollectionsService owns the persisted history and favorites lists: it
// loads a list, applies the pure list operation and writes the result back.
type CollectionsService struct {
	store      KVStore
	historyCap int
}

func NewCollectionsService(store KVStore, historyCap int) *CollectionsService {
	if historyCap <= 0 {
		historyCap = HistoryCap
	}
	return &CollectionsService{store: store, historyCap: historyCap}
}

func (service *CollectionsService) History(userID uint) ([]models.MealAnalysis, error) {
	return service.load(userID, models.KeyMealHistory)
}

func (service *CollectionsService) Favorites(userID uint) ([]models.MealAnalysis, error) {
	return service.load(userID, models.KeyMealFavorites)
}

func (service *CollectionsService) RecordAnalysis(userID uint, analysis models.MealAnalysis) ([]models.MealAnalysis, error) {
	history, err := service.History(userID)
	if err != nil {
		return nil, err
	}
	updated := AppendToHistory(history, analysis, service.historyCap)
	if err := service.save(userID, models.KeyMealHistory, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteHistoryEntry removes id from history only; a favorited copy is kept.
func (service *CollectionsService) DeleteHistoryEntry(userID uint, id string) ([]models.MealAnalysis, error) {
	history, err := service.History(userID)
	if err != nil {
		return nil, err
	}
	updated := DeleteFromHistory(history, id)
	if len(updated) == len(history) {
		return history, nil
	}
	if err := service.save(userID, models.KeyMealHistory, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (service *CollectionsService) ClearHistory(userID uint) error {
	if err := service.store.Delete(userID, models.KeyMealHistory); err != nil {
		return fmt.Errorf("%w: %v", ErrCollectionSaveFailed, err)
	}
	return nil
}

// ToggleFavorite flips membership of analysis and reports whether it is now a
// favorite. A stored copy with the same id wins over the supplied one; an
// analysis known to neither list must pass ValidateMealAnalysis.
func (service *CollectionsService) ToggleFavorite(userID uint, analysis models.MealAnalysis) ([]models.MealAnalysis, bool, error) {
	favorites, err := service.Favorites(userID)
	if err != nil {
		return nil, false, err
	}
	analysis, err = service.resolveFavorite(userID, favorites, analysis)
	if err != nil {
		return nil, false, err
	}
	updated := ToggleFavorite(favorites, analysis)
	if err := service.save(userID, models.KeyMealFavorites, updated); err != nil {
		return nil, false, err
	}
	return updated, containsAnalysis(updated, analysis.ID), nil
}

// FindAnalyses resolves ids against history and favorites, preserving the
// order of ids.
func (service *CollectionsService) FindAnalyses(userID uint, ids []string) ([]models.MealAnalysis, error) {
	history, err := service.History(userID)
	if err != nil {
		return nil, err
	}
	favorites, err := service.Favorites(userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.MealAnalysis, 0, len(ids))
	for _, id := range ids {
		if analysis, ok := FindAnalysis(history, id); ok {
			result = append(result, analysis)
			continue
		}
		if analysis, ok := FindAnalysis(favorites, id); ok {
			result = append(result, analysis)
			continue
		}
		return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	return result, nil
}

func (service *CollectionsService) resolveFavorite(userID uint, favorites []models.MealAnalysis, analysis models.MealAnalysis) (models.MealAnalysis, error) {
	if stored, ok := FindAnalysis(favorites, analysis.ID); ok {
		return stored, nil
	}
	history, err := service.History(userID)
	if err != nil {
		return models.MealAnalysis{}, err
	}
	if stored, ok := FindAnalysis(history, analysis.ID); ok {
		return stored, nil
	}
	if err := ValidateMealAnalysis(analysis); err != nil {
		return models.MealAnalysis{}, err
	}
	return analysis, nil
}

func (service *CollectionsService) load(userID uint, key string) ([]models.MealAnalysis, error) {
	list := make([]models.MealAnalysis, 0)
	found, err := service.store.Get(userID, key, &list)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollectionLoadFailed, err)
	}
	if !found || list == nil {
		return []models.MealAnalysis{}, nil
	}
	return list, nil
}

func (service *CollectionsService) save(userID uint, key string, list []models.MealAnalysis) error {
	if err := service.store.Set(userID, key, list); err != nil {
		return fmt.Errorf("%w: %v", ErrCollectionSaveFailed, err)
	}
	return nil
}
