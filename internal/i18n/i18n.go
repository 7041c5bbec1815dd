package i18n

import (
	"fmt"
	"sort"
	"strings"
)

const (
	English = "en"
	Arabic  = "ar"
)

var tables = map[string]map[string]string{
	English: en,
	Arabic:  ar,
}

// Translator renders message keys for one language, falling back to
// English and then to the key itself.
type Translator struct {
	lang string
}

func New(lang string) Translator {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := tables[lang]; !ok {
		lang = English
	}
	return Translator{lang: lang}
}

func (t Translator) Lang() string {
	return t.lang
}

// T formats the template for key with fmt verbs.
func (t Translator) T(key string, args ...any) string {
	tmpl, ok := tables[t.lang][key]
	if !ok {
		tmpl, ok = en[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

func Supported(lang string) bool {
	_, ok := tables[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

func Languages() []string {
	out := make([]string, 0, len(tables))
	for k := range tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
