package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	settings, err := handler.settingsService.LoadSettings(user.ID)
	if err != nil {
		return handler.internalError(c, "load settings", err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	update := services.SettingsUpdate{}
	if err := c.BodyParser(&update); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	settings, err := handler.settingsService.UpdateSettings(user.ID, update)
	switch {
	case errors.Is(err, services.ErrSettingsGoalInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_goal")
	case errors.Is(err, services.ErrSettingsLanguageInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_language")
	case err != nil:
		return handler.internalError(c, "update settings", err)
	}

	c.Locals(contextLanguageKey, settings.Language)
	return c.JSON(settings)
}

// ChangePassword also clears a pending temporary password. The new hash
// invalidates every existing session, so a fresh cookie is issued.
func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.PasswordChange{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	err := handler.settingsService.ChangePassword(*user, input)
	switch {
	case errors.Is(err, services.ErrSettingsPasswordMismatch):
		return handler.apiError(c, fiber.StatusBadRequest, "error.password_mismatch")
	case errors.Is(err, services.ErrSettingsWeakPassword):
		return handler.apiError(c, fiber.StatusBadRequest, "error.weak_password")
	case errors.Is(err, services.ErrSettingsInvalidCurrentPassword),
		errors.Is(err, services.ErrSettingsNewPasswordMustDiffer),
		errors.Is(err, services.ErrSettingsPasswordChangeInvalidInput):
		return handler.apiError(c, fiber.StatusBadRequest, "error.password_change_invalid")
	case err != nil:
		return handler.internalError(c, "change password", err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return handler.internalError(c, "change password", err)
	}
	return handler.respondSession(c, &updated, false, fiber.StatusOK)
}
