package db

import (
	"github.com/terraincognita07/goutly/internal/models"
	"gorm.io/gorm"
)

// normalizedEmailClause matches the idx_users_email_normalized expression so
// lookups use the index.
const normalizedEmailClause = "lower(trim(email)) = ?"

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	err := repo.database.First(&user, userID).Error
	return user, err
}

// FindByNormalizedEmail expects email already lowercased and trimmed.
func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	err := repo.database.Where(normalizedEmailClause, email).First(&user).Error
	return user, err
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	err := repo.database.Model(&models.User{}).Where(normalizedEmailClause, email).Limit(1).Count(&matched).Error
	return matched > 0, err
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.update(userID, map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	})
}

func (repo *UserRepository) UpdateSettings(userID uint, dailyPurineGoal int, language string) error {
	return repo.update(userID, map[string]any{
		"daily_purine_goal": dailyPurineGoal,
		"language":          language,
	})
}

// update reports gorm.ErrRecordNotFound when no row has userID.
func (repo *UserRepository) update(userID uint, columns map[string]any) error {
	result := repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
