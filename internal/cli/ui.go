package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Terminal colours, as 256-colour palette indices.
var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorFail    = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorBright  = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

// Styles shared with cmd/netgraph and the editor view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorBright)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
	StyleError     = lipgloss.NewStyle().Foreground(colorFail)
)

var (
	styleIconSuccess = StyleSuccess
	styleIconError   = StyleError
	styleIconWarning = StyleWarning
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorLabel)
	styleIconSpinner = StyleHighlight

	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
	styleHeader  = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	styleKey     = lipgloss.NewStyle().Foreground(colorLabel).Width(10)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconLink    = "—"
	iconSwatch  = "●"
)

// =============================================================================
// Status Output
// =============================================================================

// stdout receives status lines. Command results that scripts may parse go
// to cmd.OutOrStdout instead.
var stdout io.Writer = os.Stdout

func status(icon lipgloss.Style, glyph, text string) {
	fmt.Fprintln(stdout, icon.Render(glyph)+" "+text)
}

func printSuccess(format string, args ...any) {
	status(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Graph Formatting
// =============================================================================

// swatch renders a coloured dot for a palette colour.
func swatch(c netgraph.Colour) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(iconSwatch)
}

// formatStats summarises a graph on one line, e.g. "3 nodes · 2 links".
func formatStats(s *netgraph.Store) string {
	return fmt.Sprintf("%s · %s", plural(s.Len(), "node"), plural(len(s.Edges()), "link"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// formatKeyValue renders a labeled value.
func formatKeyValue(key, value string) string {
	return styleKey.Render(key) + " " + StyleValue.Render(value)
}
