package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DateKey is a calendar date in the fixed "2006-01-02" form. It is the join key
// between upstream records and the generated window.
type DateKey string

// DateLayout is the layout of every DateKey.
const DateLayout = "2006-01-02"

// MaxIntensity is the highest intensity bucket.
const MaxIntensity = 4

// Intensity is the 0..4 activity bucket supplied by the upstream provider.
// The upstream API sends it either as a number or as a numeric string.
type Intensity int

// UnmarshalJSON accepts 2, "2", "" and null.
func (i *Intensity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("intensity の文字列デコードに失敗しました: %w", err)
		}
		if s == "" {
			*i = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("intensity %q は数値ではありません: %w", s, err)
		}
		*i = Intensity(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("intensity のデコードに失敗しました: %w", err)
	}
	*i = Intensity(n)
	return nil
}

// Clamp limits the bucket to 0..MaxIntensity.
func (i Intensity) Clamp() Intensity {
	switch {
	case i < 0:
		return 0
	case i > MaxIntensity:
		return MaxIntensity
	}
	return i
}

// ContributionRecord is one day of activity as reported upstream.
type ContributionRecord struct {
	Date      DateKey   `json:"date"`
	Count     int       `json:"count"`
	Intensity Intensity `json:"intensity"`
}

// Year is the per-year summary the upstream API returns next to the records.
type Year struct {
	Year  string `json:"year"`
	Total int    `json:"total"`
	Range struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"range"`
}

// ContributionsResponse is the body of GET {host}/api/v1/{username}.
type ContributionsResponse struct {
	Years         []Year               `json:"years"`
	Contributions []ContributionRecord `json:"contributions"`
}
