package chart

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firejune/notion-github-embed/internal/models"
)

func TestEncodeOptions_DefaultsAreOmitted(t *testing.T) {
	v, err := EncodeOptions(models.DefaultRenderOptions())
	require.NoError(t, err)
	assert.Empty(t, v.Encode())

	link, err := CanonicalURL("https://example.com/", "octocat", models.DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/octocat", link)
}

func TestEncodeOptions_OnlyChangedFields(t *testing.T) {
	o := models.DefaultRenderOptions()
	o.BorderRadius = 0
	o.ShowWeekDays = false

	v, err := EncodeOptions(o)
	require.NoError(t, err)
	assert.Equal(t, "radius=0&weeks=false", v.Encode())
}

func TestOptions_RoundTrip(t *testing.T) {
	mutate := []func(*models.RenderOptions){
		func(o *models.RenderOptions) {},
		func(o *models.RenderOptions) { o.BorderRadius = 0 },
		func(o *models.RenderOptions) { o.BorderRadius = 5 },
		func(o *models.RenderOptions) { o.BoxMargin = 0 },
		func(o *models.RenderOptions) { o.BoxMargin = 6; o.BoxSize = 14 },
		func(o *models.RenderOptions) { o.ShowWeekDays = false },
		func(o *models.RenderOptions) { o.ShowFooter = false },
		func(o *models.RenderOptions) { o.ColorScheme = models.SchemeDark },
		func(o *models.RenderOptions) {
			o.BoxSize, o.BoxMargin, o.BorderRadius = 8, 1, 4
			o.ShowWeekDays, o.ShowFooter = false, false
			o.ColorScheme = models.SchemeAuto
		},
	}
	for i, m := range mutate {
		o := models.DefaultRenderOptions()
		m(&o)

		link, err := CanonicalURL("https://example.com", "octocat", o)
		require.NoError(t, err)
		u, err := url.Parse(link)
		require.NoError(t, err)

		assert.Equal(t, o, DecodeOptions(u.Query()), "case %d: %s", i, link)
	}
}

func TestDecodeOptions_Garbage(t *testing.T) {
	v := url.Values{
		"radius": {"round"},
		"margin": {"-3"},
		"size":   {"500"},
		"weeks":  {"maybe"},
		"footer": {"0"},
		"scheme": {"sepia"},
	}
	o := DecodeOptions(v)

	def := models.DefaultRenderOptions()
	assert.Equal(t, def.BorderRadius, o.BorderRadius)
	assert.Equal(t, 0, o.BoxMargin)
	assert.Equal(t, maxBoxSize, o.BoxSize)
	assert.True(t, o.ShowWeekDays)
	assert.False(t, o.ShowFooter)
	assert.Equal(t, models.SchemeLight, o.ColorScheme)
}

func TestNormalizeOptions_RadiusBoundedBySize(t *testing.T) {
	o := models.DefaultRenderOptions()
	o.BoxSize = 6
	o.BorderRadius = 10
	assert.Equal(t, 3, NormalizeOptions(o).BorderRadius)
}
