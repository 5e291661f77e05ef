package x_log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

//
// ---------- IBM Carbon Colors ----------

const (
	ColorTeal40    = "#3ddbd9"
	ColorBlue60    = "#4589ff"
	ColorBlue40    = "#78a9ff"
	ColorBlue70    = "#0043ce"
	ColorBlueBase  = "#0f62fe"
	ColorGreen50   = "#24a148"
	ColorRed60     = "#da1e28"
	ColorRedStrong = "#ff0000"
	ColorOrange40  = "#ff832b"
	ColorGray60    = "#8d8d8d"
	ColorGray10    = "#f4f4f4"
	ColorGray90    = "#262626"
)

//
// ---------- Styles Definition ----------

// Styles defines all formatting styles used for structured output
type Styles struct {
	Out               io.Writer                 // output target
	Timestamp         lipgloss.Style            // style for timestamps
	Levels            map[Level]lipgloss.Style  // level-to-style mapping
	Keys              map[string]lipgloss.Style // custom field keys
	Values            map[string]lipgloss.Style // custom field values
	DefaultKeyStyle   lipgloss.Style            // fallback for unknown keys
	DefaultValueStyle lipgloss.Style            // fallback for unknown values
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

//
// ---------- Theme Selectors ----------

// DefaultStylesByName returns a theme by name ("dark", "light")
func DefaultStylesByName(name string) *Styles {
	switch strings.ToLower(name) {
	case "light":
		return DefaultStylesLight()
	default:
		return DefaultStylesDark()
	}
}

//
// ---------- Console Formatter ----------

// ConsoleWriterWithStyles builds a zerolog.ConsoleWriter with styles
func ConsoleWriterWithStyles(styles *Styles) zerolog.ConsoleWriter {
	out := styles.Out
	if out == nil {
		out = os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "01-02 15:04:05",

		FormatLevel: func(i any) string {
			lvl := strings.ToLower(fmt.Sprint(i))
			var color string

			switch lvl {
			case "debug":
				color = ColorTeal40
			case "info":
				color = ColorBlue60
			case "warn":
				color = ColorOrange40
			case "error":
				color = ColorRed60
			case "fatal":
				color = ColorRedStrong
			default:
				color = ColorGray60
			}

			tag := strings.ToUpper(lvl)
			if len(tag) > 3 {
				tag = tag[:3]
			}
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color(color)).
				Padding(0, 1).
				Render(tag)
		},

		FormatTimestamp: func(i any) string {
			return styles.Timestamp.Render(fmt.Sprintf("[%s]", i))
		},

		FormatFieldName: func(i any) string {
			key := fmt.Sprint(i)
			style, ok := styles.Keys[key]
			if !ok {
				style = styles.DefaultKeyStyle
			}
			eqStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60))
			return style.Render(key) + eqStyle.Render("=")
		},

		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorGray10)).
				Render(fmt.Sprint(i))
		},
	}
}

//
// ---------- Themes ----------

// palette holds the colors that differ between themes.
type palette struct {
	key, debug, info string
}

// newStyles builds a theme. Warn, error, fatal and the mining keys share
// their colors across themes.
func newStyles(p palette) *Styles {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color(p.key))
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

	keys := map[string]lipgloss.Style{
		"itemsets": fg(ColorGreen50),
		"err":      fg(ColorRed60),
	}
	for _, k := range []string{"dataset", "file", "run", "support", "module"} {
		keys[k] = key
	}

	return &Styles{
		Timestamp:         fg(ColorGray60).Width(16),
		DefaultKeyStyle:   key,
		DefaultValueStyle: lipgloss.NewStyle(),
		Levels: map[Level]lipgloss.Style{
			DebugLevel: fg(p.debug),
			InfoLevel:  fg(p.info),
			WarnLevel:  fg(ColorOrange40),
			ErrorLevel: fg(ColorRed60),
			FatalLevel: fg(ColorRedStrong),
		},
		Keys: keys,
		Values: map[string]lipgloss.Style{
			"dataset":  lipgloss.NewStyle().Italic(true),
			"file":     lipgloss.NewStyle().Italic(true),
			"itemsets": lipgloss.NewStyle().Bold(true),
			"err":      lipgloss.NewStyle().Bold(true),
		},
	}
}

// DefaultStylesDark is the theme for dark terminals.
func DefaultStylesDark() *Styles {
	return newStyles(palette{key: ColorBlue40, debug: ColorTeal40, info: ColorBlue60})
}

// DefaultStylesLight is the theme for light terminals.
func DefaultStylesLight() *Styles {
	return newStyles(palette{key: ColorBlueBase, debug: ColorGray90, info: ColorBlue70})
}
