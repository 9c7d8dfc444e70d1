package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/models"
	"github.com/firejune/notion-github-embed/internal/services/chart"
)

type renderFlags struct {
	input   string
	user    string
	today   string
	tz      string
	out     string
	baseURL string
	format  string
	options models.RenderOptions
	scheme  string
}

func newRenderCmd() *cobra.Command {
	f := renderFlags{options: models.DefaultRenderOptions()}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a contribution graph from a JSON file",
		Long: `Reads contribution records (either an upstream API response or a bare
array of {"date","count","intensity"} objects) and writes the SVG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.InOrStdin(), cmd.OutOrStdout(), f, time.Now())
		},
	}
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "Contribution JSON file (- for stdin)")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "GitHub username (required)")
	cmd.Flags().StringVar(&f.today, "today", "", "Last day of the graph as YYYY-MM-DD (default: today in --tz)")
	cmd.Flags().StringVar(&f.tz, "tz", "UTC", "Timezone used to decide today")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "http://localhost:8080", "Base URL the footer links to")
	cmd.Flags().StringVar(&f.format, "format", "svg", "Output format: svg or json")
	cmd.Flags().IntVar(&f.options.BoxSize, "size", f.options.BoxSize, "Cell size in pixels")
	cmd.Flags().IntVar(&f.options.BoxMargin, "margin", f.options.BoxMargin, "Gap between cells in pixels")
	cmd.Flags().IntVar(&f.options.BorderRadius, "radius", f.options.BorderRadius, "Cell corner radius")
	cmd.Flags().BoolVar(&f.options.ShowWeekDays, "weeks", f.options.ShowWeekDays, "Show weekday labels")
	cmd.Flags().BoolVar(&f.options.ShowFooter, "footer", f.options.ShowFooter, "Show the footer and legend")
	cmd.Flags().StringVar(&f.scheme, "scheme", string(f.options.ColorScheme), "Color scheme: light, dark or auto")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runRender(stdin io.Reader, stdout io.Writer, f renderFlags, now time.Time) error {
	data, err := readInput(stdin, f.input)
	if err != nil {
		return err
	}
	records, err := decodeRecords(data)
	if err != nil {
		return err
	}

	w, err := renderWindow(f.today, f.tz, now)
	if err != nil {
		return err
	}
	g, err := chart.Build(records, w)
	if err != nil {
		return err
	}

	o := f.options
	o.ColorScheme = models.ColorScheme(f.scheme)
	if !o.ColorScheme.Valid() {
		return fmt.Errorf("unknown color scheme %q", f.scheme)
	}
	o = chart.NormalizeOptions(o)

	var out []byte
	switch f.format {
	case "svg":
		svg, err := chart.NewRenderer(f.baseURL).Render(g, f.user, o)
		if err != nil {
			return err
		}
		out = []byte(svg)
	case "json":
		out, err = json.MarshalIndent(g, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode graph: %w", err)
		}
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}

	logger.Debug("graph rendered",
		zap.String("user", f.user),
		zap.Stringer("start", g.Start),
		zap.Stringer("last", g.Last),
		zap.Int("total", g.Total),
		zap.String("size", humanize.Bytes(uint64(len(out)))),
	)

	if f.out == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(f.out, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.out, err)
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// decodeRecords accepts the upstream response object or a bare record array.
func decodeRecords(data []byte) ([]models.ContributionRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var records []models.ContributionRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse records: %w", err)
		}
		return records, nil
	}
	var resp models.ContributionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse contributions response: %w", err)
	}
	return resp.Contributions, nil
}

func renderWindow(today, tz string, now time.Time) (calendar.Window, error) {
	if today != "" {
		d, err := calendar.ParseDate(today)
		if err != nil {
			return calendar.Window{}, err
		}
		return calendar.BuildWindow(d, calendar.DefaultWeekStart), nil
	}
	loc, err := calendar.ParseLocation(tz)
	if err != nil {
		return calendar.Window{}, err
	}
	return calendar.NewWindow(now, loc, calendar.DefaultWeekStart), nil
}
