package engine

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-hebcal/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator renders localized event summaries for the generated feed. Month
// names and the formatted Hebrew date stay in their fixed form; only the
// surrounding summary text is translated.
type Translator struct {
	localizer *i18n.Localizer
}

// NewTranslator loads the embedded locale files and builds a localizer for
// the requested language, falling back to English for missing messages.
func NewTranslator(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return &Translator{localizer: i18n.NewLocalizer(bundle, lang)}
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
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
		} else {
			slog.Debug(config.MsgLocaleLoaded,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
		}
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	return &Translator{localizer: i18n.NewLocalizer(bundle, lang, config.DefaultLanguage)}
}

// Summary renders the event summary for one anniversary. It matches the
// Generator.FormatSummary signature and is injected from the entry point.
func (t *Translator) Summary(name, hebrewLabel string, age int, yearKnown bool) string {
	key := config.TKeyEvtSummary
	data := map[string]any{"Name": name, "Hebrew": hebrewLabel}

	if yearKnown {
		if age == 0 {
			key = config.TKeyEvtSummaryBirth
		} else {
			key = config.TKeyEvtSummaryAge
			data["Age"] = age
		}
	}

	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fmt.Sprintf(config.FallbackSummary, name)
	}
	return msg
}
