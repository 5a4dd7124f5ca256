package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/goutly/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinDailyPurineGoal = 1
	MaxDailyPurineGoal = 1000
)

var (
	ErrSettingsGoalInvalid          = errors.New("settings daily purine goal invalid")
	ErrSettingsLanguageInvalid      = errors.New("settings language invalid")
	ErrSettingsUpdateFailed         = errors.New("settings update failed")
	ErrSettingsPasswordUpdateFailed = errors.New("settings password update failed")

	ErrSettingsPasswordChangeInvalidInput = errors.New("settings password change invalid input")
	ErrSettingsPasswordMismatch           = errors.New("settings password mismatch")
	ErrSettingsInvalidCurrentPassword     = errors.New("settings invalid current password")
	ErrSettingsNewPasswordMustDiffer      = errors.New("settings new password must differ")
	ErrSettingsWeakPassword               = errors.New("settings weak password")
)

type SettingsUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	UpdateSettings(userID uint, dailyPurineGoal int, language string) error
}

// SettingsUpdate holds optional changes; nil fields keep the stored value.
type SettingsUpdate struct {
	DailyPurineGoal *int    `json:"dailyPurineGoal"`
	Language        *string `json:"language"`
}

type UserSettings struct {
	Email              string `json:"email"`
	DailyPurineGoal    int    `json:"dailyPurineGoal"`
	Language           string `json:"language"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// PasswordChange replaces the account password. Values are trimmed the same
// way sign-in trims them.
type PasswordChange struct {
	Current string `json:"currentPassword" form:"currentPassword"`
	New     string `json:"newPassword" form:"newPassword"`
	Confirm string `json:"confirmPassword" form:"confirmPassword"`
}

func (change PasswordChange) trimmed() PasswordChange {
	return PasswordChange{
		Current: strings.TrimSpace(change.Current),
		New:     strings.TrimSpace(change.New),
		Confirm: strings.TrimSpace(change.Confirm),
	}
}

// check reports the first failed rule.
func (change PasswordChange) check(passwordHash string) error {
	switch {
	case change.Current == "" || change.New == "" || change.Confirm == "":
		return ErrSettingsPasswordChangeInvalidInput
	case change.New != change.Confirm:
		return ErrSettingsPasswordMismatch
	case bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(change.Current)) != nil:
		return ErrSettingsInvalidCurrentPassword
	case change.New == change.Current:
		return ErrSettingsNewPasswordMustDiffer
	case ValidatePasswordStrength(change.New) != nil:
		return ErrSettingsWeakPassword
	}
	return nil
}

type SettingsService struct {
	users              SettingsUserRepository
	supportedLanguages []string
}

func NewSettingsService(users SettingsUserRepository, supportedLanguages ...string) *SettingsService {
	if len(supportedLanguages) == 0 {
		supportedLanguages = []string{"en", "ko"}
	}
	return &SettingsService{users: users, supportedLanguages: supportedLanguages}
}

func (service *SettingsService) LoadSettings(userID uint) (UserSettings, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return UserSettings{}, err
	}
	return userSettingsFrom(user), nil
}

func (service *SettingsService) UpdateSettings(userID uint, update SettingsUpdate) (UserSettings, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return UserSettings{}, err
	}

	goal := EffectivePurineGoal(user)
	if update.DailyPurineGoal != nil {
		goal = *update.DailyPurineGoal
		if goal < MinDailyPurineGoal || goal > MaxDailyPurineGoal {
			return UserSettings{}, ErrSettingsGoalInvalid
		}
	}

	language := user.Language
	if update.Language != nil {
		language = service.normalizeLanguage(*update.Language)
		if language == "" {
			return UserSettings{}, ErrSettingsLanguageInvalid
		}
	}
	if language == "" {
		language = models.DefaultLanguage
	}

	if err := service.users.UpdateSettings(userID, goal, language); err != nil {
		return UserSettings{}, fmt.Errorf("%w: %v", ErrSettingsUpdateFailed, err)
	}
	user.DailyPurineGoal = goal
	user.Language = language
	return userSettingsFrom(user), nil
}

// ChangePassword stores the new hash and clears any pending forced change.
func (service *SettingsService) ChangePassword(user models.User, change PasswordChange) error {
	change = change.trimmed()
	if err := change.check(user.PasswordHash); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(change.New), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(hash), false); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsPasswordUpdateFailed, err)
	}
	return nil
}

func (service *SettingsService) normalizeLanguage(raw string) string {
	language := strings.ToLower(strings.TrimSpace(raw))
	for _, supported := range service.supportedLanguages {
		if language == supported {
			return language
		}
	}
	return ""
}

func userSettingsFrom(user models.User) UserSettings {
	language := user.Language
	if language == "" {
		language = models.DefaultLanguage
	}
	return UserSettings{
		Email:              user.Email,
		DailyPurineGoal:    EffectivePurineGoal(user),
		Language:           language,
		MustChangePassword: user.MustChangePassword,
	}
}
