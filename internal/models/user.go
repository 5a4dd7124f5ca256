package models

import "time"

const (
	DefaultDailyPurineGoal = 200
	DefaultLanguage        = "ko"
)

type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Email              string    `gorm:"uniqueIndex;not null"`
	PasswordHash       string    `gorm:"not null"`
	DailyPurineGoal    int       `gorm:"not null;default:200"`
	Language           string    `gorm:"not null;default:ko"`
	MustChangePassword bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time `gorm:"not null"`
}
