package db

import (
	"time"

	"github.com/terraincognita07/goutly/internal/models"
	"gorm.io/gorm"
)

type PurineLogRepository struct {
	database *gorm.DB
}

func NewPurineLogRepository(database *gorm.DB) *PurineLogRepository {
	return &PurineLogRepository{database: database}
}

// Create stores the timestamp in UTC so range filters compare consistently.
func (repo *PurineLogRepository) Create(entry *models.PurineIntakeLog) error {
	entry.Timestamp = entry.Timestamp.UTC()
	return repo.database.Create(entry).Error
}

// ListByUserRange returns entries with fromStart <= timestamp < toEnd; nil
// bounds are open.
func (repo *PurineLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PurineIntakeLog, error) {
	query := repo.database.Model(&models.PurineIntakeLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("timestamp >= ?", fromStart.UTC())
	}
	if toEnd != nil {
		query = query.Where("timestamp < ?", toEnd.UTC())
	}

	entries := make([]models.PurineIntakeLog, 0)
	if err := query.Order("timestamp ASC, created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *PurineLogRepository) DeleteByUserAndID(userID uint, id string) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, id).Delete(&models.PurineIntakeLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
