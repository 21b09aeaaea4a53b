package i18n

import (
	"fmt"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fa"
	ut "github.com/go-playground/universal-translator"
)

const (
	LocaleEnglish = "en"
	LocaleFarsi   = "fa"
)

const attrPrefix = "attr:"

// Catalog is a read-only-after-startup translation table.
type Catalog struct {
	uni *ut.UniversalTranslator
}

// Option configures a Catalog.
type Option func(*Catalog) error

// WithMessages adds entries for a locale. Keys are error codes or message texts.
func WithMessages(locale string, messages map[string]string) Option {
	return func(c *Catalog) error {
		for key, text := range messages {
			if err := c.Add(locale, key, text); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithAttrs adds field-name translations for a locale.
func WithAttrs(locale string, attrs map[string]string) Option {
	return func(c *Catalog) error {
		for name, text := range attrs {
			if err := c.AddAttr(locale, name, text); err != nil {
				return err
			}
		}
		return nil
	}
}

// New creates a catalog with the built-in Farsi table loaded.
func New(opts ...Option) (*Catalog, error) {
	english := en.New()
	c := &Catalog{uni: ut.New(english, english, fa.New())}

	if err := WithMessages(LocaleFarsi, farsiMessages)(c); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) translator(locale string) (ut.Translator, error) {
	trans, found := c.uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("i18n: unsupported locale %q", locale)
	}
	return trans, nil
}

// Add registers or replaces a translation.
func (c *Catalog) Add(locale, key, text string) error {
	trans, err := c.translator(locale)
	if err != nil {
		return err
	}
	if err := trans.Add(key, text, true); err != nil {
		return fmt.Errorf("i18n: add %q for %s: %w", key, locale, err)
	}
	return nil
}

// AddAttr registers a translation for a field name.
func (c *Catalog) AddAttr(locale, name, text string) error {
	return c.Add(locale, attrPrefix+name, text)
}

// Lookup returns the first translation found among keys.
func (c *Catalog) Lookup(locale string, keys ...string) (string, bool) {
	trans, err := c.translator(locale)
	if err != nil {
		return "", false
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if text, err := trans.T(key); err == nil && text != "" {
			return text, true
		}
	}
	return "", false
}

// Translate returns the translation for the code, then for the message text,
// falling back to the message itself.
func (c *Catalog) Translate(locale, code, message string) string {
	if text, ok := c.Lookup(locale, code, message); ok {
		return text
	}
	return message
}

// TranslateAttr returns the translated field name, or name when none exists.
func (c *Catalog) TranslateAttr(locale, name string) string {
	if text, ok := c.Lookup(locale, attrPrefix+name); ok {
		return text
	}
	return name
}
