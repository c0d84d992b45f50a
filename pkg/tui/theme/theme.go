package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Tree   TreeTheme
	Footer FooterTheme
	Help   HelpTheme
}

// TreeTheme styles the rows of the tree pane.
type TreeTheme struct {
	Title    lipgloss.Style
	Group    lipgloss.Style
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Dragged  lipgloss.Style
	Target   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Pending lipgloss.Style
}

// HelpTheme styles the help overlay.
type HelpTheme struct {
	Frame lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Tree: TreeTheme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Group:    lipgloss.NewStyle().Bold(true),
			Item:     lipgloss.NewStyle(),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Dragged:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Target:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		},
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Help: HelpTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Margin(0).
				Padding(0),
		},
	}
}
