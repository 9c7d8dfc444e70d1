package chart

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/firejune/notion-github-embed/internal/models"
)

// Accepted option ranges. Out-of-range values are clamped.
const (
	minBoxSize   = 4
	maxBoxSize   = 40
	maxBoxMargin = 10
)

// linkParams is the query-string form of RenderOptions. A nil field is a
// default value and is left out of the link.
type linkParams struct {
	Size   *int   `url:"size,omitempty"`
	Radius *int   `url:"radius,omitempty"`
	Margin *int   `url:"margin,omitempty"`
	Weeks  *bool  `url:"weeks,omitempty"`
	Footer *bool  `url:"footer,omitempty"`
	Scheme string `url:"scheme,omitempty"`
}

// NormalizeOptions clamps every field into its accepted range.
func NormalizeOptions(o models.RenderOptions) models.RenderOptions {
	o.BoxSize = clamp(o.BoxSize, minBoxSize, maxBoxSize)
	o.BoxMargin = clamp(o.BoxMargin, 0, maxBoxMargin)
	o.BorderRadius = clamp(o.BorderRadius, 0, o.BoxSize/2)
	if !o.ColorScheme.Valid() {
		o.ColorScheme = models.SchemeLight
	}
	return o
}

// EncodeOptions returns the query parameters for every option that differs
// from DefaultRenderOptions.
func EncodeOptions(o models.RenderOptions) (url.Values, error) {
	o = NormalizeOptions(o)
	def := models.DefaultRenderOptions()

	var p linkParams
	if o.BoxSize != def.BoxSize {
		p.Size = &o.BoxSize
	}
	if o.BorderRadius != def.BorderRadius {
		p.Radius = &o.BorderRadius
	}
	if o.BoxMargin != def.BoxMargin {
		p.Margin = &o.BoxMargin
	}
	if o.ShowWeekDays != def.ShowWeekDays {
		p.Weeks = &o.ShowWeekDays
	}
	if o.ShowFooter != def.ShowFooter {
		p.Footer = &o.ShowFooter
	}
	if o.ColorScheme != def.ColorScheme {
		p.Scheme = string(o.ColorScheme)
	}

	v, err := query.Values(p)
	if err != nil {
		return nil, fmt.Errorf("オプションのエンコードに失敗しました: %w", err)
	}
	return v, nil
}

// DecodeOptions is the inverse of EncodeOptions. Missing or unparsable
// parameters keep their default.
func DecodeOptions(v url.Values) models.RenderOptions {
	o := models.DefaultRenderOptions()
	if n, ok := intParam(v, "size"); ok {
		o.BoxSize = n
	}
	if n, ok := intParam(v, "radius"); ok {
		o.BorderRadius = n
	}
	if n, ok := intParam(v, "margin"); ok {
		o.BoxMargin = n
	}
	if b, ok := boolParam(v, "weeks"); ok {
		o.ShowWeekDays = b
	}
	if b, ok := boolParam(v, "footer"); ok {
		o.ShowFooter = b
	}
	if s := models.ColorScheme(strings.ToLower(v.Get("scheme"))); s.Valid() {
		o.ColorScheme = s
	}
	return NormalizeOptions(o)
}

// CanonicalURL is the badge URL that reproduces a rendering with o.
func CanonicalURL(baseURL, username string, o models.RenderOptions) (string, error) {
	v, err := EncodeOptions(o)
	if err != nil {
		return "", err
	}
	link := strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(username)
	if q := v.Encode(); q != "" {
		link += "?" + q
	}
	return link, nil
}

func intParam(v url.Values, key string) (int, bool) {
	s := v.Get(key)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolParam(v url.Values, key string) (bool, bool) {
	s := v.Get(key)
	if s == "" {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
