package models

import "time"

const (
	KeyMealHistory   = "meal_history"
	KeyMealFavorites = "meal_favorites"
)

type KVEntry struct {
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	Key       string `gorm:"column:entry_key;primaryKey;type:text"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
