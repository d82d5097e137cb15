package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStyleAliases(t *testing.T) {
	cases := map[string]Layout{
		"classic":   LayoutClassic,
		"corporate": LayoutClassic,
		"service":   LayoutClassic,
		"modern":    LayoutModern,
		"tech":      LayoutModern,
		"creative":  LayoutCreative,
		"retail":    LayoutCreative,
		"food":      LayoutCreative,
	}
	for key, layout := range cases {
		style := ResolveStyle(key)
		assert.Equal(t, layout, style.Layout, key)
		assert.Equal(t, TemplateKey(key), style.Key, key)
		assert.NotEmpty(t, style.DisplayName, key)
	}
}

func TestResolveStyleFallsBackToClassic(t *testing.T) {
	for _, key := range []string{"", "unknown", "neon"} {
		style := ResolveStyle(key)
		assert.Equal(t, Classic, style.Key, key)
		assert.Equal(t, LayoutClassic, style.Layout, key)
	}
}

func TestParseTemplateKeyIsCaseInsensitive(t *testing.T) {
	key, ok := ParseTemplateKey("  Creative ")
	assert.True(t, ok)
	assert.Equal(t, Creative, key)

	_, ok = ParseTemplateKey("gothic")
	assert.False(t, ok)
}

func TestKeysCatalog(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 8)
	assert.Equal(t, Classic, keys[0])
	assert.Equal(t, "Template Klasik Profesional", Classic.DisplayName())
	assert.Equal(t, "Template Jasa & Konsultasi", Service.DisplayName())
	assert.Equal(t, "", TemplateKey("nope").DisplayName())

	keys[0] = "mutated"
	assert.Equal(t, Classic, Keys()[0])
}
