package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/goutly/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAuthEmailTaken     = errors.New("auth email already registered")
	ErrAuthUserNotFound   = errors.New("auth user not found")
	ErrAuthPasswordHash   = errors.New("auth password hash failed")
	ErrAuthRegisterFailed = errors.New("auth register failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type AuthService struct {
	users             AuthUserRepository
	defaultPurineGoal int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, defaultPurineGoal: models.DefaultDailyPurineGoal}
}

// WithDefaultPurineGoal sets the daily goal given to newly registered accounts.
func (service *AuthService) WithDefaultPurineGoal(goal int) *AuthService {
	if goal > 0 {
		service.defaultPurineGoal = goal
	}
	return service
}

func (service *AuthService) Register(emailRaw string, passwordRaw string) (models.User, error) {
	credentials, err := Credentials{Email: emailRaw, Password: passwordRaw}.normalized()
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(credentials.Password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(credentials.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}
	if exists {
		return models.User{}, ErrAuthEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthPasswordHash, err)
	}

	user := models.User{
		Email:           credentials.Email,
		PasswordHash:    string(hash),
		DailyPurineGoal: service.defaultPurineGoal,
		Language:        models.DefaultLanguage,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}
	return user, nil
}

// Authenticate reports ErrAuthCredentialsInvalid for both unknown emails and
// wrong passwords.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	credentials, err := Credentials{Email: emailRaw, Password: passwordRaw}.normalized()
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(credentials.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthUserNotFound
	}
	return user, err
}

// ResetPassword replaces the password of the account with a generated
// temporary one that must be changed on next use.
func (service *AuthService) ResetPassword(emailRaw string) (string, error) {
	email := NormalizeEmail(emailRaw)
	if email == "" {
		return "", ErrAuthCredentialsInvalid
	}
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAuthUserNotFound
		}
		return "", err
	}

	temporaryPassword, err := GenerateTemporaryPassword()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthPasswordHash, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(hash), true); err != nil {
		return "", err
	}
	return temporaryPassword, nil
}
