package chart

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/models"
)

// Fixed geometry in pixels.
const (
	canvasMargin     = 2
	labelRowHeight   = 15
	weekdayTextWidth = 28
	footerRowHeight  = 20
	fontSize         = 9
	legendTextWidth  = 26
)

const (
	DefaultProviderURL  = "https://github.com"
	DefaultProviderName = "GitHub"
)

// Layout is the pixel geometry of one rendering.
type Layout struct {
	Step         int
	TextWidth    int
	FooterHeight int
	ChartHeight  int
	Width        int
	Height       int
}

// ComputeLayout derives the geometry for columns week columns.
func ComputeLayout(columns int, o models.RenderOptions) Layout {
	l := Layout{Step: o.BoxSize + o.BoxMargin}
	if o.ShowWeekDays {
		l.TextWidth = weekdayTextWidth
	}
	if o.ShowFooter {
		l.FooterHeight = footerRowHeight
	}
	l.ChartHeight = labelRowHeight + l.FooterHeight + models.DaysPerWeek*l.Step + canvasMargin
	l.Width = columns*l.Step + l.TextWidth + canvasMargin
	l.Height = l.ChartHeight + 2*canvasMargin
	return l
}

// Renderer turns a Graph into an SVG document.
type Renderer struct {
	// BaseURL is where this service is reachable; the footer links back to it.
	BaseURL      string
	ProviderURL  string
	ProviderName string
}

// NewRenderer creates a Renderer linking day cells to GitHub.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{
		BaseURL:      baseURL,
		ProviderURL:  DefaultProviderURL,
		ProviderName: DefaultProviderName,
	}
}

// Render emits the document. The output depends only on its arguments.
func (r *Renderer) Render(g Graph, username string, o models.RenderOptions) (string, error) {
	o = NormalizeOptions(o)
	l := ComputeLayout(len(g.Grid), o)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" data-color-mode="%s">`,
		l.Width, l.Height, l.Width, l.Height, html.EscapeString(string(o.ColorScheme)))
	sb.WriteString("<style>" + styleSheet() + "</style>")
	fmt.Fprintf(&sb, `<g transform="translate(%d, %d)">`, canvasMargin, canvasMargin)

	r.writeDays(&sb, g.Grid, username, o, l)
	writeMonthLabels(&sb, g.Labels, l)
	if o.ShowWeekDays {
		writeWeekDays(&sb, g.Grid, o, l)
	}
	if o.ShowFooter {
		if err := r.writeFooter(&sb, g.Total, username, o, l); err != nil {
			return "", err
		}
		// The legend shares the footer row; no row, no legend.
		writeLegend(&sb, len(g.Grid), o, l)
	}

	sb.WriteString("</g></svg>")
	return sb.String(), nil
}

func (r *Renderer) writeDays(sb *strings.Builder, grid models.Grid, username string, o models.RenderOptions, l Layout) {
	fmt.Fprintf(sb, `<g class="days" transform="translate(%d, %d)">`, l.TextWidth, labelRowHeight)
	for col, week := range grid {
		fmt.Fprintf(sb, `<g transform="translate(%d, 0)">`, col*l.Step)
		for row, cell := range week {
			colors := BucketColors(cell.Level())
			fmt.Fprintf(sb, `<a href="%s" target="_blank">`, html.EscapeString(r.dayURL(username, cell)))
			fmt.Fprintf(sb, `<rect width="%d" height="%d" x="0" y="%d" rx="%d" ry="%d" fill="%s" stroke="%s" data-date="%s" data-level="%d">`,
				o.BoxSize, o.BoxSize, row*l.Step, o.BorderRadius, o.BorderRadius,
				colors.FillRef(), colors.StrokeRef(), cell.Key(), cell.Level())
			fmt.Fprintf(sb, "<title>%s / %d</title></rect></a>", cell.Key(), cell.Count)
		}
		sb.WriteString("</g>")
	}
	sb.WriteString("</g>")
}

func (r *Renderer) dayURL(username string, cell models.DayCell) string {
	return fmt.Sprintf("%s/%s?tab=overview&from=%s&to=%s",
		strings.TrimRight(r.ProviderURL, "/"), url.PathEscape(username), cell.Key(), cell.Key())
}

func writeMonthLabels(sb *strings.Builder, labels []models.MonthLabel, l Layout) {
	fmt.Fprintf(sb, `<g class="months" transform="translate(%d, 0)">`, l.TextWidth)
	for _, label := range labels {
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-size="%d" fill="var(%s)">%s</text>`,
			label.Column*l.Step, labelRowHeight-5, fontSize, varTextDefault, html.EscapeString(label.Text))
	}
	sb.WriteString("</g>")
}

// writeWeekDays labels odd rows only. An empty grid has no first column to
// read weekdays from, so nothing is drawn.
func writeWeekDays(sb *strings.Builder, grid models.Grid, o models.RenderOptions, l Layout) {
	if len(grid) == 0 {
		return
	}
	fmt.Fprintf(sb, `<g class="weekdays" transform="translate(0, %d)">`, labelRowHeight)
	for row, cell := range grid[0] {
		if row%2 == 0 {
			continue
		}
		fmt.Fprintf(sb, `<text x="0" y="%d" font-size="%d" fill="var(%s)">%s</text>`,
			row*l.Step+o.BoxSize-1, fontSize, varTextDefault, weekdayAbbrev(cell))
	}
	sb.WriteString("</g>")
}

func weekdayAbbrev(cell models.DayCell) string {
	return calendar.Weekday(cell.Date).String()[:3]
}

func footerY(l Layout) int {
	return labelRowHeight + models.DaysPerWeek*l.Step + canvasMargin
}

func (r *Renderer) writeFooter(sb *strings.Builder, total int, username string, o models.RenderOptions, l Layout) error {
	link, err := CanonicalURL(r.BaseURL, username, o)
	if err != nil {
		return err
	}
	fmt.Fprintf(sb, `<g class="footer" transform="translate(%d, %d)">`, l.TextWidth, footerY(l))
	fmt.Fprintf(sb, `<a href="%s" target="_blank"><text x="0" y="%d" font-size="%d" fill="var(%s)">%s</text></a>`,
		html.EscapeString(link), footerRowHeight-6, fontSize, varTextMuted,
		html.EscapeString(FooterText(total, username, r.ProviderName)))
	sb.WriteString("</g>")
	return nil
}

// FooterText is the summary sentence under the graph.
func FooterText(total int, username, provider string) string {
	noun := "contributions"
	if total == 1 {
		noun = "contribution"
	}
	return fmt.Sprintf("%s %s in the last year by @%s on %s", humanize.Comma(int64(total)), noun, username, provider)
}

// writeLegend draws the Less -> More swatches right-aligned in the footer row.
func writeLegend(sb *strings.Builder, columns int, o models.RenderOptions, l Layout) {
	right := l.TextWidth + columns*l.Step - o.BoxMargin
	x := right - legendTextWidth - (models.MaxIntensity+1)*l.Step
	y := (footerRowHeight - o.BoxSize) / 2

	fmt.Fprintf(sb, `<g class="legend" transform="translate(%d, %d)">`, x, footerY(l))
	fmt.Fprintf(sb, `<text x="-4" y="%d" font-size="%d" text-anchor="end" fill="var(%s)">Less</text>`, footerRowHeight-6, fontSize, varTextMuted)
	for level := models.Intensity(0); level <= models.MaxIntensity; level++ {
		colors := BucketColors(level)
		fmt.Fprintf(sb, `<rect width="%d" height="%d" x="%d" y="%d" rx="%d" ry="%d" fill="%s" stroke="%s" data-level="%d"/>`,
			o.BoxSize, o.BoxSize, int(level)*l.Step, y, o.BorderRadius, o.BorderRadius, colors.FillRef(), colors.StrokeRef(), level)
	}
	fmt.Fprintf(sb, `<text x="%d" y="%d" font-size="%d" fill="var(%s)">More</text>`,
		(models.MaxIntensity+1)*l.Step+4, footerRowHeight-6, fontSize, varTextMuted)
	sb.WriteString("</g>")
}
