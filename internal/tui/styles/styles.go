package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Teal      = lipgloss.Color("#2DD4BF")
	DeepBlue  = lipgloss.Color("#1E293B")
	Slate     = lipgloss.Color("#334155")
	DimGray   = lipgloss.Color("#64748B")
	LightGray = lipgloss.Color("#94A3B8")
	White     = lipgloss.Color("#F8FAFC")
	Green     = lipgloss.Color("#34D399")
	Amber     = lipgloss.Color("#FBBF24")
	Red       = lipgloss.Color("#F87171")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Teal)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LockedStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(DeepBlue).
			Background(Teal).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Slate).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(DeepBlue).
			Padding(0, 1)
)

// Indicators
const (
	CompleteMark = "✓"
	LockMark     = "♦"
	FavoriteMark = "♥"
	PlayMark     = "▶"
	PauseMark    = "⏸"
)

// SpinnerFrames used while content loads
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
