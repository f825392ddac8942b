// Package ui renders the profile card and notices for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Accent   = lipgloss.Color("#0EA5FF")
	Success  = lipgloss.Color("#39D98A")
	ErrorCol = lipgloss.Color("#FF5C5C")
	Text     = lipgloss.Color("#FFFFFF")
	Muted    = lipgloss.Color("#888888")

	CardStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted)

	AvatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Padding(1, 3).
			MarginRight(2)

	NameStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	IDStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(Success)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorCol)
)
