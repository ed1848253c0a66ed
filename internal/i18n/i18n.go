// Package i18n localizes the user-facing messages of the CLI, most
// importantly the one-sentence error-kind descriptions.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-vcf/internal/config"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys for one selected language, falling back
// to English and finally to the built-in descriptions.
type Translator struct {
	localizer *goi18n.Localizer
}

// New loads the embedded locale bundle and returns a Translator for lang.
func New(lang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}

	return &Translator{
		localizer: goi18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
	}, nil
}

// Msg translates a key, returning the key itself when no translation exists.
func (t *Translator) Msg(key string) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Describe returns the localized one-sentence description of a parse or
// validation error. It falls back to the English built-ins for errors
// without a translation key.
func (t *Translator) Describe(err error) string {
	key := ""
	switch {
	case errors.Is(err, vcard.ErrInvalidSource):
		key = config.TKeyErrInvalidSource
	case errors.Is(err, vcard.ErrInvalidCard):
		key = config.TKeyErrInvalidCard
	case errors.Is(err, vcard.ErrInvalidProperty):
		key = config.TKeyErrInvalidProperty
	case errors.Is(err, vcard.ErrInvalidDateTime):
		key = config.TKeyErrInvalidDateTime
	case errors.Is(err, vcard.ErrExhausted):
		key = config.TKeyErrExhausted
	case errors.Is(err, vcard.ErrWriteFailure):
		key = config.TKeyErrWriteFailure
	case err == nil:
		key = config.TKeyMsgCardValid
	}

	if key == "" {
		return vcard.Describe(err)
	}

	msg, lerr := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if lerr != nil {
		return vcard.Describe(err)
	}
	return msg
}
