package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - shared hex colors for consistent theming across all CLI output.
const (
	// ColorSuccess is green - used for positive outcomes such as written files.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for error-severity issues.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warning-severity issues.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorMuted is gray - used for secondary text such as document roles.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorHighlight is blue - used for matched terms in search fragments.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	successStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	warningStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight)
)

// markReplacer strips the <mark> tags bleve wraps around matched terms.
var markReplacer = strings.NewReplacer("<mark>", "", "</mark>", "")

// styleSeverity renders a severity label, plain when color is disabled.
func styleSeverity(severity Severity) string {
	if GetNoColor() {
		return string(severity)
	}
	switch severity {
	case SeverityError:
		return errorStyle.Render(string(severity))
	case SeverityWarning:
		return warningStyle.Render(string(severity))
	}
	return string(severity)
}

// styleSuccess renders positive outcome text, plain when color is disabled.
func styleSuccess(s string) string {
	if GetNoColor() {
		return s
	}
	return successStyle.Render(s)
}

// styleMuted renders secondary text, plain when color is disabled.
func styleMuted(s string) string {
	if GetNoColor() {
		return s
	}
	return mutedStyle.Render(s)
}

// stripMarkTags removes bleve's highlight tags from a fragment.
func stripMarkTags(fragment string) string {
	return markReplacer.Replace(fragment)
}

// highlightFragment converts bleve's <mark> spans to terminal highlighting.
// Unbalanced tags are passed through untouched.
func highlightFragment(fragment string) string {
	if GetNoColor() {
		return stripMarkTags(fragment)
	}

	var b strings.Builder
	rest := fragment
	for {
		start := strings.Index(rest, "<mark>")
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[start:], "</mark>")
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:start])
		b.WriteString(highlightStyle.Render(rest[start+len("<mark>") : start+end]))
		rest = rest[start+end+len("</mark>"):]
	}
}
