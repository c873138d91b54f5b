package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedString(t *testing.T) {
	name := LocalizedString{"en": "Water Leakage", "sw": "Uvujaji wa Maji"}

	assert.Equal(t, "Uvujaji wa Maji", name.Localized("sw"))
	assert.Equal(t, "Water Leakage", name.Localized("fr"), "falls back to the default locale")
	assert.Equal(t, "", LocalizedString(nil).Localized("en"))
}
