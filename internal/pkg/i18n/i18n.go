package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localeFS embed.FS

// DefaultLocale is used when no locale is configured
const DefaultLocale = "en"

// Catalog holds the flattened messages of one locale
type Catalog struct {
	locale   string
	messages map[string]string
}

// Load loads the embedded catalog for locale
func Load(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	data, err := localeFS.ReadFile("locales/" + locale + ".yml")
	if err != nil {
		return nil, fmt.Errorf("locale %q not available: %w", locale, err)
	}
	return Parse(locale, data)
}

// Parse builds a catalog from a YAML document rooted at the locale key
func Parse(locale string, data []byte) (*Catalog, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	root, ok := doc[locale].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("locale %q: missing root key", locale)
	}

	c := &Catalog{locale: locale, messages: make(map[string]string)}
	flatten("", root, c.messages)
	return c, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Locale returns the catalog's locale
func (c *Catalog) Locale() string {
	return c.locale
}

// T renders the message for key, replacing %{name} placeholders from vars.
// Unknown keys render as "translation missing: <locale>.<key>".
func (c *Catalog) T(key string, vars map[string]string) string {
	msg, ok := c.messages[key]
	if !ok {
		return "translation missing: " + c.locale + "." + key
	}
	if len(vars) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "%{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
