package i18n

import (
	"testing"
	"testing/fstest"
)

func TestNewManagerLoadsEmbeddedLocales(t *testing.T) {
	manager, err := NewManager("en", Locales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != "en" {
		t.Fatalf("DefaultLanguage() = %q, want en", manager.DefaultLanguage())
	}
	if got := manager.Label("ko", "risk", "high"); got != "높음" {
		t.Fatalf("Label(ko, risk, high) = %q, want 높음", got)
	}
	if got := manager.Translate("en", "missing.key"); got != "missing.key" {
		t.Fatalf("Translate() for unknown key = %q, want the key", got)
	}
}

func TestNewManagerFallsBackToKoreanDefault(t *testing.T) {
	manager, err := NewManager("fr", Locales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangKO {
		t.Fatalf("DefaultLanguage() = %q, want ko", manager.DefaultLanguage())
	}
	if got := manager.Translate("de", "time_of_day.lunch"); got != "점심" {
		t.Fatalf("Translate(de) = %q, want Korean fallback", got)
	}
}

func TestNewManagerRequiresKoreanAndEnglish(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": {Data: []byte(`{"risk.low":"Low"}`)},
	}
	if _, err := NewManager("en", locales); err == nil {
		t.Fatal("expected missing ko locale to fail")
	}

	locales["ko.json"] = &fstest.MapFile{Data: []byte(`{}`)}
	if _, err := NewManager("en", locales); err == nil {
		t.Fatal("expected empty ko locale to fail")
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	manager, err := NewManager("ko", Locales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if got := manager.DetectFromAcceptLanguage("fr-FR, en-US;q=0.8"); got != "en" {
		t.Fatalf("DetectFromAcceptLanguage() = %q, want en", got)
	}
	if got := manager.DetectFromAcceptLanguage("en;q=0.3, ko-KR;q=0.9"); got != "ko" {
		t.Fatalf("DetectFromAcceptLanguage(weighted) = %q, want ko", got)
	}
	for _, header := range []string{"fr", "", ";;;"} {
		if got := manager.DetectFromAcceptLanguage(header); got != "ko" {
			t.Fatalf("DetectFromAcceptLanguage(%q) = %q, want default ko", header, got)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	manager, err := NewManager("en", Locales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	testCases := map[string]string{
		"ko-KR": "ko",
		" EN ":  "en",
		"ja":    "en",
		"":      "en",
	}
	for raw, want := range testCases {
		if got := manager.NormalizeLanguage(raw); got != want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", raw, got, want)
		}
	}
	if got := manager.SupportedLanguages(); len(got) != 2 || got[0] != "en" || got[1] != "ko" {
		t.Fatalf("SupportedLanguages() = %v, want [en ko]", got)
	}
}
