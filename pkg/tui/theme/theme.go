package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Table  TableTheme
	Form   FormTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// HeaderTheme styles the day title bar.
type HeaderTheme struct {
	Title lipgloss.Style
	Day   lipgloss.Style
}

// TableTheme styles entry rows.
type TableTheme struct {
	Head        lipgloss.Style
	Row         lipgloss.Style
	Selected    lipgloss.Style
	Editing     lipgloss.Style
	Placeholder lipgloss.Style
}

// FormTheme styles the add and edit forms.
type FormTheme struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
}

// FooterTheme groups styles used by the bottom help and banner lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Banner lipgloss.Style
}

// ModalTheme styles the centered confirmation overlay.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	label := lipgloss.NewStyle().Foreground(muted).Width(8)

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Day:   lipgloss.NewStyle().Bold(true),
		},
		Table: TableTheme{
			Head:        lipgloss.NewStyle().Foreground(muted).Underline(true),
			Row:         lipgloss.NewStyle(),
			Selected:    lipgloss.NewStyle().Reverse(true),
			Editing:     lipgloss.NewStyle().Foreground(accent),
			Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:        lipgloss.NewStyle().Bold(true),
			Label:        label,
			FocusedLabel: label.Foreground(accent).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Banner: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
