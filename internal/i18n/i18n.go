package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

const (
	LangKO = "ko"
	LangEN = "en"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Locales returns the built-in locale files rooted at the locales directory.
func Locales() fs.FS {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return locales
}

// Manager resolves message keys per language. Lookups fall back to the
// default language and then to the key itself.
type Manager struct {
	defaultLanguage string
	catalogs        map[string]map[string]string
}

// NewManager loads every <language>.json file at the root of locales. Both
// ko and en must be present and non-empty.
func NewManager(defaultLanguage string, locales fs.FS) (*Manager, error) {
	names, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}

	manager := &Manager{catalogs: make(map[string]map[string]string, len(names))}
	for _, name := range names {
		code := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
		catalog, err := readCatalog(locales, name)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", code, err)
		}
		manager.catalogs[code] = catalog
	}

	for _, required := range []string{LangKO, LangEN} {
		if _, ok := manager.catalogs[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	manager.defaultLanguage = LangKO
	if code := baseLanguage(defaultLanguage); manager.isSupported(code) {
		manager.defaultLanguage = code
	}
	return manager, nil
}

func readCatalog(locales fs.FS, name string) (map[string]string, error) {
	content, err := fs.ReadFile(locales, name)
	if err != nil {
		return nil, err
	}
	catalog := map[string]string{}
	if err := json.Unmarshal(content, &catalog); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	return catalog, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

// SupportedLanguages lists the loaded language codes in sorted order.
func (manager *Manager) SupportedLanguages() []string {
	codes := make([]string, 0, len(manager.catalogs))
	for code := range manager.catalogs {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// NormalizeLanguage maps a stored or requested tag such as "ko-KR" to a
// loaded language, or the default.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if code := baseLanguage(raw); manager.isSupported(code) {
		return code
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage picks the highest weighted supported language of
// an Accept-Language header.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return manager.defaultLanguage
	}
	for _, tag := range tags {
		base, confidence := tag.Base()
		if confidence == language.No {
			continue
		}
		if code := base.String(); manager.isSupported(code) {
			return code
		}
	}
	return manager.defaultLanguage
}

func (manager *Manager) Translate(lang string, key string) string {
	for _, code := range []string{manager.NormalizeLanguage(lang), manager.defaultLanguage} {
		if value := strings.TrimSpace(manager.catalogs[code][key]); value != "" {
			return manager.catalogs[code][key]
		}
	}
	return key
}

// Label returns the display label of an enum value, e.g. Label("ko", "risk", "high").
func (manager *Manager) Label(lang string, group string, value string) string {
	return manager.Translate(lang, group+"."+value)
}

func (manager *Manager) isSupported(code string) bool {
	_, ok := manager.catalogs[code]
	return ok && code != ""
}

func baseLanguage(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}
