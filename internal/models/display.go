package models

// Tint is a display color shared by the web and terminal consoles
type Tint string

const (
	TintOrange  Tint = "#c2410c"
	TintBlue    Tint = "#1d4ed8"
	TintPurple  Tint = "#7e22ce"
	TintEmerald Tint = "#047857"
	TintSlate   Tint = "#334155"
	TintRose    Tint = "#be123c"
	TintRed     Tint = "#b91c1c"
)

// Placeholder is shown in place of absent optional fields
const Placeholder = "—"

// OrPlaceholder returns s, or the placeholder when s is blank
func OrPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
