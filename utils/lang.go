package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// Languages are the message files loaded into the bundle, in fallback order
var Languages = []string{"en", "zh_tw"}

var bundle *i18n.Bundle

// InitI18NBundle loads one yaml message file per language from dir
func InitI18NBundle(dir string) error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, lang := range Languages {
		if _, err := b.LoadMessageFile(path.Join(dir, lang+".yaml")); err != nil {
			return err
		}
	}
	bundle = b
	return nil
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}

// LocalizeAll renders a message in every loaded language, keyed by language
func LocalizeAll(messageID string, data map[string]interface{}) (map[string]string, error) {
	texts := make(map[string]string, len(Languages))
	for _, lang := range Languages {
		text, err := NewLocalizer(lang).Localize(&i18n.LocalizeConfig{
			MessageID:    messageID,
			TemplateData: data,
		})
		if err != nil {
			return nil, err
		}
		texts[lang] = text
	}
	return texts, nil
}
