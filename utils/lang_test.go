package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizeAll(t *testing.T) {
	assert.NoError(t, InitI18NBundle("../i18n"))

	texts, err := LocalizeAll("notification.contact_shared.content", map[string]interface{}{
		"Handle": "tel:+886912345678",
	})
	assert.NoError(t, err)
	assert.Len(t, texts, 2)
	assert.Equal(t, "You accepted a helper. Reach them at tel:+886912345678", texts["en"])
	assert.Contains(t, texts["zh_tw"], "tel:+886912345678")
}

func TestLocalizeAllUnknownMessage(t *testing.T) {
	assert.NoError(t, InitI18NBundle("../i18n"))

	_, err := LocalizeAll("notification.unknown", nil)
	assert.Error(t, err)
}

func TestInitI18NBundleMissingDir(t *testing.T) {
	assert.Error(t, InitI18NBundle("./no-such-dir"))
}
