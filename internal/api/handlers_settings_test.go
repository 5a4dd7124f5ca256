package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/goutly/internal/services"
)

func TestUpdateSettingsValidatesAndSwitchesLanguage(t *testing.T) {
	env := newTestEnv(t)
	cookie := registerTestUser(t, env.app, "settings@example.com")

	response, body := doJSON(t, env.app, http.MethodPost, "/api/settings", cookie, map[string]any{"dailyPurineGoal": 0})
	if response.StatusCode != http.StatusBadRequest || readAPIError(t, body) != "error.invalid_goal" {
		t.Fatalf("goal 0 = %d %s, want 400", response.StatusCode, body)
	}
	response, body = doJSON(t, env.app, http.MethodPost, "/api/settings", cookie, map[string]any{"language": "fr"})
	if response.StatusCode != http.StatusBadRequest || readAPIError(t, body) != "error.invalid_language" {
		t.Fatalf("language fr = %d %s, want 400", response.StatusCode, body)
	}

	response, body = doJSON(t, env.app, http.MethodPost, "/api/settings", cookie, map[string]any{"language": "EN", "dailyPurineGoal": 300})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("update settings = %d %s", response.StatusCode, body)
	}
	settings := decodeJSON[services.UserSettings](t, body)
	if settings.Language != "en" || settings.DailyPurineGoal != 300 {
		t.Fatalf("settings = %#v, want en/300", settings)
	}

	_, body = doJSON(t, env.app, http.MethodGet, "/api/logs?date=bad", cookie, nil)
	if message := decodeJSON[map[string]string](t, body)["message"]; !strings.Contains(message, "YYYY-MM-DD") {
		t.Fatalf("error message = %q, want the english text", message)
	}
}

func TestChangePasswordRejectsWrongCurrentPassword(t *testing.T) {
	env := newTestEnv(t)
	cookie := registerTestUser(t, env.app, "password@example.com")

	response, body := doJSON(t, env.app, http.MethodPost, "/api/settings/change-password", cookie, map[string]any{
		"currentPassword": "WrongPass1",
		"newPassword":     "NewStrongPass2",
		"confirmPassword": "NewStrongPass2",
	})
	if response.StatusCode != http.StatusBadRequest || readAPIError(t, body) != "error.password_change_invalid" {
		t.Fatalf("wrong current password = %d %s, want 400", response.StatusCode, body)
	}

	response, body = doJSON(t, env.app, http.MethodPost, "/api/settings/change-password", cookie, map[string]any{
		"currentPassword": "StrongPass1",
		"newPassword":     "NewStrongPass2",
		"confirmPassword": "NewStrongPass3",
	})
	if response.StatusCode != http.StatusBadRequest || readAPIError(t, body) != "error.password_mismatch" {
		t.Fatalf("mismatch = %d %s, want 400", response.StatusCode, body)
	}
}
