package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tr := New("zh")
	assert.Equal(t, "回收站", tr.T("trash.title"))
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	tr := New("de")
	assert.Equal(t, "All Notes", tr.T("notes.all"))
}

func TestUnknownKeyFallsBackToKey(t *testing.T) {
	tr := New("en")
	assert.Equal(t, "no.such.key", tr.T("no.such.key"))
}
