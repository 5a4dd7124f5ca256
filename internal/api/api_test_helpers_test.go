package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/goutly/internal/db"
	"github.com/terraincognita07/goutly/internal/gemini"
	"github.com/terraincognita07/goutly/internal/i18n"
	"github.com/terraincognita07/goutly/internal/metrics"
	"gorm.io/gorm"
)

const testAnalysisJSON = `{
  "mealDescription": "Two slices of toast and a glass of milk",
  "totalPurineScore": 18,
  "overallRiskLevel": "low",
  "overallSummary": "A low purine breakfast.",
  "items": [
    {"foodName": "toast", "purineLevel": "low", "purineAmount": "~10mg/100g", "explanation": "Refined grains are low in purines."}
  ],
  "recommendations": "Keep it up.",
  "alternatives": ["oatmeal"]
}`

type fakeReply struct {
	status  int
	text    string
	blocked bool
}

// fakeGenerativeService answers generateContent calls from a queue. An
// empty queue answers 503.
type fakeGenerativeService struct {
	mu       sync.Mutex
	replies  []fakeReply
	requests [][]byte
}

func (fake *fakeGenerativeService) enqueue(replies ...fakeReply) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.replies = append(fake.replies, replies...)
}

func (fake *fakeGenerativeService) requestCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.requests)
}

func (fake *fakeGenerativeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fake.mu.Lock()
	fake.requests = append(fake.requests, body)
	reply := fakeReply{status: http.StatusServiceUnavailable}
	if len(fake.replies) > 0 {
		reply = fake.replies[0]
		fake.replies = fake.replies[1:]
	}
	fake.mu.Unlock()

	if reply.status == 0 {
		reply.status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.status)
	if reply.status != http.StatusOK {
		_, _ = w.Write([]byte(`{"error":{"message":"unavailable"}}`))
		return
	}

	var payload any
	if reply.blocked {
		payload = map[string]any{"promptFeedback": map[string]any{"blockReason": "SAFETY"}}
	} else {
		payload = map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": reply.text}}},
			}},
		}
	}
	_ = json.NewEncoder(w).Encode(payload)
}

type testEnv struct {
	app      *fiber.App
	database *gorm.DB
	fake     *fakeGenerativeService
	handler  *Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "goutly-api-test.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", i18n.Locales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	fake := &fakeGenerativeService{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	handler, err := NewHandler(database, Options{
		SecretKey:    "0123456789abcdef0123456789abcdef",
		Location:     time.UTC,
		I18n:         i18nManager,
		Logger:       logger,
		Metrics:      metrics.NewRecorder(),
		Generator:    gemini.NewClient(gemini.Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}),
		HistoryCap:   50,
		CookieSecure: false,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testEnv{app: app, database: database, fake: fake, handler: handler}
}

// doJSON sends body (when non-nil) as JSON and returns the response with its body read.
func doJSON(t *testing.T, app *fiber.App, method string, path string, authCookie string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	request.Header.Set("Accept-Language", "en")
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	return sendRequest(t, app, request)
}

func sendRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, []byte) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.Method, request.URL.Path, err)
	}
	return response, payload
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": "StrongPass1",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", response.StatusCode, body)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie after register")
	}
	return authCookieName + "=" + cookie.Value
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return value
}

func readAPIError(t *testing.T, body []byte) string {
	t.Helper()
	return decodeJSON[map[string]string](t, body)["error"]
}
