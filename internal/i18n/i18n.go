package i18n

import (
	"embed"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
)

// Translations ship inside the binary so deployments need no resources
// directory next to the executable.
//
//go:embed resources/*.json
var resourceFS embed.FS

var translations = make(map[string]map[string]string)

func init() {
	entries, _ := resourceFS.ReadDir("resources")
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		lang := strings.TrimSuffix(e.Name(), ".json")
		data, err := resourceFS.ReadFile("resources/" + e.Name())
		if err != nil {
			continue
		}
		var t map[string]string
		if err := json.Unmarshal(data, &t); err != nil {
			continue
		}
		translations[lang] = t
	}
}

func T(lang, key string) string {
	if t, ok := translations[lang]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	// Fallback to en
	if t, ok := translations["en"]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	return key
}

func GetLang(r *http.Request) string {
	cookie, err := r.Cookie("lang")
	if err == nil {
		return cookie.Value
	}
	return "en"
}

func GetAvailableLangs() []string {
	langs := []string{}
	for l := range translations {
		langs = append(langs, l)
	}
	if len(langs) == 0 {
		return []string{"en", "hu"}
	}
	return langs
}
