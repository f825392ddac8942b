package ui

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"zetra/internal/domain"
)

const (
	fallbackAvatar = "Z"
	fallbackName   = "Unnamed identity"
	createdLayout  = "2006-01-02 15:04:05 MST"
)

// AvatarLetter is the upper-cased first letter of name, or Z when name is
// empty.
func AvatarLetter(name string) string {
	name = strings.TrimSpace(name)
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return fallbackAvatar
	}
	return string(unicode.ToUpper(r))
}

// FormatCreated renders a createdAt timestamp in loc.
func FormatCreated(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(createdLayout)
}

// Card renders a profile the way the identity panel shows it.
func Card(p domain.PublicView, loc *time.Location) string {
	avatar := AvatarStyle.Background(lipgloss.Color(avatarColor(p.Color))).Render(AvatarLetter(p.DisplayName))

	name := p.DisplayName
	if name == "" {
		name = fallbackName
	}
	lines := []string{
		NameStyle.Render(name),
		IDStyle.Render(p.ID.String()),
		MutedStyle.Render("Created: " + FormatCreated(p.CreatedAt, loc)),
	}
	if p.LegacyID != "" {
		lines = append(lines, MutedStyle.Render("Previously: "+p.LegacyID))
	}
	if p.Meta.Alg != "" {
		lines = append(lines, MutedStyle.Render(p.Meta.Alg))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Center, avatar, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return CardStyle.Render(body)
}

// EmptyCard is shown when no profile exists.
func EmptyCard(message string) string {
	return CardStyle.Render(MutedStyle.Render(message))
}

// Notice renders a status line; failures use the error colour.
func Notice(text string, failed bool) string {
	if failed {
		return ErrorTextStyle.Render(text)
	}
	return NoticeStyle.Render(text)
}

func avatarColor(c string) string {
	if c == "" {
		return string(Accent)
	}
	return c
}
