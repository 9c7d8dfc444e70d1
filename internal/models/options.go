package models

// ColorScheme selects which palette the document activates through data-color-mode.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
	// SchemeAuto follows the viewer's prefers-color-scheme.
	SchemeAuto ColorScheme = "auto"
)

// Valid reports whether s is one of the known schemes.
func (s ColorScheme) Valid() bool {
	switch s {
	case SchemeLight, SchemeDark, SchemeAuto:
		return true
	}
	return false
}

// RenderOptions controls the drawing. Every field that differs from
// DefaultRenderOptions is written into the footer's canonical link.
type RenderOptions struct {
	BoxSize      int         `json:"boxSize" yaml:"box_size"`
	BoxMargin    int         `json:"boxMargin" yaml:"box_margin"`
	BorderRadius int         `json:"borderRadius" yaml:"border_radius"`
	ShowWeekDays bool        `json:"showWeekDays" yaml:"show_week_days"`
	ShowFooter   bool        `json:"showFooter" yaml:"show_footer"`
	ColorScheme  ColorScheme `json:"colorScheme" yaml:"color_scheme"`
}

// DefaultRenderOptions returns the options used when nothing is specified.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		BoxSize:      10,
		BoxMargin:    3,
		BorderRadius: 2,
		ShowWeekDays: true,
		ShowFooter:   true,
		ColorScheme:  SchemeLight,
	}
}
