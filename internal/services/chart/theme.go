package chart

import (
	"fmt"
	"strings"

	"github.com/firejune/notion-github-embed/internal/models"
)

const (
	varTextDefault = "--color-text-default"
	varTextMuted   = "--color-fg-muted"
)

// ColorPair names the custom properties used for a cell's fill and stroke.
type ColorPair struct {
	Fill   string
	Stroke string
}

// FillRef returns the fill as a var() reference.
func (p ColorPair) FillRef() string { return "var(" + p.Fill + ")" }

// StrokeRef returns the stroke as a var() reference.
func (p ColorPair) StrokeRef() string { return "var(" + p.Stroke + ")" }

// bucketColors maps an intensity bucket to its colour pair. Bucket 0 is the
// "no data" pair.
var bucketColors = [models.MaxIntensity + 1]ColorPair{
	{Fill: "--color-calendar-graph-day-bg", Stroke: "--color-calendar-graph-day-border"},
	{Fill: "--color-calendar-graph-day-L1-bg", Stroke: "--color-calendar-graph-day-L1-border"},
	{Fill: "--color-calendar-graph-day-L2-bg", Stroke: "--color-calendar-graph-day-L2-border"},
	{Fill: "--color-calendar-graph-day-L3-bg", Stroke: "--color-calendar-graph-day-L3-border"},
	{Fill: "--color-calendar-graph-day-L4-bg", Stroke: "--color-calendar-graph-day-L4-border"},
}

// BucketColors returns the colour pair for level.
func BucketColors(level models.Intensity) ColorPair {
	return bucketColors[level.Clamp()]
}

// themeVar is one custom property definition.
type themeVar struct {
	Name  string
	Value string
}

// Palettes hold concrete values for every custom property the document uses.
// Slices keep the emitted order stable.
var (
	lightPalette = []themeVar{
		{bucketColors[0].Fill, "#ebedf0"},
		{bucketColors[0].Stroke, "rgba(27,31,35,0.06)"},
		{bucketColors[1].Fill, "#9be9a8"},
		{bucketColors[1].Stroke, "rgba(27,31,35,0.06)"},
		{bucketColors[2].Fill, "#40c463"},
		{bucketColors[2].Stroke, "rgba(27,31,35,0.06)"},
		{bucketColors[3].Fill, "#30a14e"},
		{bucketColors[3].Stroke, "rgba(27,31,35,0.06)"},
		{bucketColors[4].Fill, "#216e39"},
		{bucketColors[4].Stroke, "rgba(27,31,35,0.06)"},
		{varTextDefault, "#24292f"},
		{varTextMuted, "#57606a"},
	}
	darkPalette = []themeVar{
		{bucketColors[0].Fill, "#161b22"},
		{bucketColors[0].Stroke, "rgba(240,246,252,0.05)"},
		{bucketColors[1].Fill, "#0e4429"},
		{bucketColors[1].Stroke, "rgba(240,246,252,0.05)"},
		{bucketColors[2].Fill, "#006d32"},
		{bucketColors[2].Stroke, "rgba(240,246,252,0.05)"},
		{bucketColors[3].Fill, "#26a641"},
		{bucketColors[3].Stroke, "rgba(240,246,252,0.05)"},
		{bucketColors[4].Fill, "#39d353"},
		{bucketColors[4].Stroke, "rgba(240,246,252,0.05)"},
		{varTextDefault, "#c9d1d9"},
		{varTextMuted, "#8b949e"},
	}
)

func writeDeclarations(sb *strings.Builder, palette []themeVar) {
	for _, v := range palette {
		fmt.Fprintf(sb, "%s:%s;", v.Name, v.Value)
	}
}

// styleSheet returns the <style> body. Both palettes are always present so
// the host page can switch data-color-mode without regenerating the image.
func styleSheet() string {
	var sb strings.Builder
	sb.WriteString(`svg[data-color-mode="light"],svg[data-color-mode="auto"]{`)
	writeDeclarations(&sb, lightPalette)
	sb.WriteString(`}svg[data-color-mode="dark"]{`)
	writeDeclarations(&sb, darkPalette)
	sb.WriteString(`}@media (prefers-color-scheme: dark){svg[data-color-mode="auto"]{`)
	writeDeclarations(&sb, darkPalette)
	sb.WriteString(`}}text{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif;}`)
	return sb.String()
}
