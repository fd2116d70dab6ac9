// Package cli renders classification output for the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	lavender = lipgloss.Color("#B388FF")
	amber    = lipgloss.Color("#FFE66D")
	coral    = lipgloss.Color("#FF6B6B")
	teal     = lipgloss.Color("#4ECDC4")
	mint     = lipgloss.Color("#95E1D3")
	gray     = lipgloss.Color("#666666")
)

var (
	// TitleStyle is used for headings and box titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lavender)

	// SuccessStyle, WarningStyle, ErrorStyle and InfoStyle color status lines.
	SuccessStyle = lipgloss.NewStyle().Foreground(teal)
	WarningStyle = lipgloss.NewStyle().Foreground(amber)
	ErrorStyle   = lipgloss.NewStyle().Foreground(coral)
	InfoStyle    = lipgloss.NewStyle().Foreground(mint)

	// SubtleStyle dims secondary text such as the analysed input.
	SubtleStyle = lipgloss.NewStyle().Foreground(gray)

	// LabelStyle highlights category names in a result.
	LabelStyle = lipgloss.NewStyle().Bold(true)

	// BarStyle colors the filled part of a confidence bar.
	BarStyle = lipgloss.NewStyle().Foreground(lavender)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	resultBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lavender).
			Padding(0, 2)
)

// Icons shown in front of status lines and headings.
const (
	MindIcon   = "🧠"
	RobotIcon  = "🤖"
	ChartIcon  = "📊"
	FolderIcon = "🗄️"
	okIcon     = "✓"
	failIcon   = "✗"
	warnIcon   = "⚠️"
	noticeIcon = "ℹ️"
)

// FormatSuccess formats a success line.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(okIcon + " " + message)
}

// FormatError formats an error line.
func FormatError(message string) string {
	return ErrorStyle.Render(failIcon + " " + message)
}

// FormatWarning formats a warning line.
func FormatWarning(message string) string {
	return WarningStyle.Render(warnIcon + " " + message)
}

// FormatInfo formats an informational line.
func FormatInfo(message string) string {
	return InfoStyle.Render(noticeIcon + " " + message)
}

// FormatTitle formats a heading.
func FormatTitle(title string) string {
	return TitleStyle.Render(MindIcon + " " + title)
}

// RenderBox draws content under title inside a rounded border.
func RenderBox(title, content string) string {
	return resultBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(title),
		"",
		content,
	))
}
