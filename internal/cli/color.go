package cli

import "github.com/charmbracelet/lipgloss"

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	headerStyle  = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().Reverse(true)
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }

var priorityColors = map[string]lipgloss.Color{
	"high":   lipgloss.Color("#FF5F5F"),
	"medium": lipgloss.Color("#FFAF00"),
	"low":    lipgloss.Color("#5FAF5F"),
}

// laneStyle picks the block colour for an activity: its own colour first,
// then its priority, then the default info colour.
func laneStyle(color, priority string) lipgloss.Style {
	if color != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	if c, ok := priorityColors[priority]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return infoStyle
}
