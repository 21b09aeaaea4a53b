// Package i18n holds the translation table used to localize error messages.
//
// A Catalog wraps a universal-translator instance with English as the
// fallback locale and Farsi preloaded. Entries are keyed either by a
// canonical error code or by the exact default-language message text.
//
//	cat, _ := i18n.New()
//	_ = cat.AddAttr(i18n.LocaleFarsi, "email", "ایمیل")
//	msg, ok := cat.Lookup(i18n.LocaleFarsi, "not_found")
package i18n
