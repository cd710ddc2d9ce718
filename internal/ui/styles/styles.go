// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Entry bodies
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Timestamps, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders
	LineNumberColor      = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#585858"} // Composer gutter

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Vim mode indicator colors
	VimNormalModeColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	VimInsertModeColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"} // green
	VimVisualModeColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve

	// Journal timeline
	EntryTimeColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}

	EntryTimeStyle = lipgloss.NewStyle().Foreground(EntryTimeColor).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
)

// ApplyTheme applies custom theme colors from configuration.
// Empty strings are ignored, keeping the default values.
// - accent: BorderHighlightFocusColor (focused pane)
// - muted: TextMutedColor + BorderDefaultColor (hints, help text, borders)
// - errorColor: StatusErrorColor (error indicators)
func ApplyTheme(accent, muted, errorColor string) {
	if accent != "" {
		BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: accent, Dark: accent}
	}
	if muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
	}
}
