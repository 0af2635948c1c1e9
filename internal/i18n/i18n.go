// Package i18n holds the Hebrew and English message catalog, locale resolution and locale-aware formatting
package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/he"
	ut "github.com/go-playground/universal-translator"
)

// Supported locales
const (
	Hebrew  = "he"
	English = "en"
)

// DefaultLocale is used when nothing else selects a language
const DefaultLocale = Hebrew

// IsSupported reports whether locale is one of the portal languages
func IsSupported(locale string) bool {
	return locale == Hebrew || locale == English
}

// Normalize maps "he-IL", "EN_us" and similar tags to a supported locale, or "" when unsupported
func Normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		locale = locale[:i]
	}
	// "iw" is the legacy code for Hebrew
	if locale == "iw" {
		locale = Hebrew
	}
	if IsSupported(locale) {
		return locale
	}
	return ""
}

// Catalog translates message keys for every supported locale
type Catalog struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
}

// NewCatalog builds the catalog and loads every message.
// defaultLocale is returned by Resolve for unsupported locales.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	if Normalize(defaultLocale) == "" {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, he.New())

	c := &Catalog{uni: uni, defaultLocale: Normalize(defaultLocale)}
	for locale, messages := range catalogMessages {
		t := c.Translator(locale)
		for key, text := range messages {
			if err := t.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", locale, key, err)
			}
		}
	}
	for locale, plurals := range pluralMessages {
		if err := addCardinals(c.Translator(locale), plurals); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// addCardinals registers a text for every plural rule of the translator's language.
// Every text carries the {0} count placeholder. Rules missing from the catalog fall back to the "other" form.
func addCardinals(t ut.Translator, plurals map[string]map[locales.PluralRule]string) error {
	for key, forms := range plurals {
		for _, rule := range t.PluralsCardinal() {
			text, ok := forms[rule]
			if !ok {
				text = forms[locales.PluralRuleOther]
			}
			if err := t.AddCardinal(key, text, rule, false); err != nil {
				return fmt.Errorf("failed to add %s plural %q: %w", t.Locale(), key, err)
			}
		}
	}
	return nil
}

// DefaultLocale returns the configured fallback locale
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Resolve returns locale when supported, otherwise the default locale
func (c *Catalog) Resolve(locale string) string {
	if l := Normalize(locale); l != "" {
		return l
	}
	return c.defaultLocale
}

// Translator returns the universal translator of the locale, falling back to the default locale
func (c *Catalog) Translator(locale string) ut.Translator {
	t, found := c.uni.GetTranslator(c.Resolve(locale))
	if !found {
		t, _ = c.uni.GetTranslator(c.defaultLocale)
	}
	return t
}

// T translates key with positional params ({0}, {1}, ...).
// An unknown key is returned unchanged so callers never render an empty string.
func (c *Catalog) T(locale, key string, params ...string) string {
	s, err := c.Translator(locale).T(key, params...)
	if err != nil || s == "" {
		return key
	}
	return s
}

// Plural translates a cardinal message for count
func (c *Catalog) Plural(locale, key string, count int) string {
	s, err := c.Translator(locale).C(key, float64(count), 0, fmt.Sprintf("%d", count))
	if err != nil || s == "" {
		return key
	}
	return s
}
