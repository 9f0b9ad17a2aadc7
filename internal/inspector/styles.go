package inspector

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	componentStyle = lipgloss.NewStyle().Bold(true).Width(20)

	phaseStyle = map[string]lipgloss.Style{
		"construct": lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		"init":      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		"subscribe": lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		"barrier":   lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
		"once":      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		"running":   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"stopping":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"stopped":   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		"failed":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}

	defaultPhaseStyle = lipgloss.NewStyle()

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	pulseOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pulseOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func renderPhase(phase string) string {
	style, ok := phaseStyle[phase]
	if !ok {
		style = defaultPhaseStyle
	}

	return style.Render(phase)
}
