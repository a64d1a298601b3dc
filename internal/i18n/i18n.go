package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"
)

//go:embed resources/*.json
var resourcesFS embed.FS

const defaultLang = "en"

var (
	translations = make(map[string]map[string]string)
	once         sync.Once
)

// Init loads the embedded translation files. It is safe to call more than
// once.
func Init() {
	once.Do(func() {
		files, _ := resourcesFS.ReadDir("resources")
		for _, f := range files {
			if path.Ext(f.Name()) != ".json" {
				continue
			}
			lang := strings.TrimSuffix(f.Name(), ".json")
			data, err := resourcesFS.ReadFile("resources/" + f.Name())
			if err != nil {
				slog.Error("reading translation", "lang", lang, "error", err)
				continue
			}
			var t map[string]string
			if err := json.Unmarshal(data, &t); err != nil {
				slog.Error("parsing translation", "lang", lang, "error", err)
				continue
			}
			translations[lang] = t
		}
	})
}

func T(lang, key string) string {
	Init()
	if t, ok := translations[lang]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	// Fallback to en
	if t, ok := translations[defaultLang]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	return key
}

// IsSupported reports whether a translation exists for lang.
func IsSupported(lang string) bool {
	Init()
	_, ok := translations[lang]
	return ok
}

// GetLang picks the language from the lang query parameter, then the lang
// cookie, falling back to English.
func GetLang(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); IsSupported(q) {
		return q
	}
	if cookie, err := r.Cookie("lang"); err == nil && IsSupported(cookie.Value) {
		return cookie.Value
	}
	return defaultLang
}

func GetAvailableLangs() []string {
	Init()
	langs := []string{}
	for l := range translations {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}
