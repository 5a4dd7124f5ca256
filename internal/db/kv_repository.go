package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/terraincognita07/goutly/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository is the per-user key-value store backing the persisted
// collections (history, favorites). Values are JSON documents.
type KVRepository struct {
	database *gorm.DB
}

func NewKVRepository(database *gorm.DB) *KVRepository {
	return &KVRepository{database: database}
}

// Get decodes the value stored under key into dst and reports whether the key existed.
func (repo *KVRepository) Get(userID uint, key string, dst any) (bool, error) {
	entry := models.KVEntry{}
	result := repo.database.Where("user_id = ? AND entry_key = ?", userID, key).Limit(1).Find(&entry)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := json.Unmarshal([]byte(entry.Value), dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (repo *KVRepository) Set(userID uint, key string, value any) error {
	if key == "" {
		return errors.New("key is required")
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	entry := models.KVEntry{UserID: userID, Key: key, Value: string(encoded)}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *KVRepository) Delete(userID uint, key string) error {
	return repo.database.Where("user_id = ? AND entry_key = ?", userID, key).Delete(&models.KVEntry{}).Error
}
