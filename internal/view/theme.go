package view

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for rendered rows and the surrounding
// UI chrome. Colors are ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Completed rows and the delete control.
	DoneText     lipgloss.Color
	DeleteAccent lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	HelpText         lipgloss.Color
	WarningText      lipgloss.Color
	ErrorText        lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	DoneText:     lipgloss.Color("241"),
	DeleteAccent: lipgloss.Color("167"), // muted red

	HeaderForeground: lipgloss.Color("255"),
	HelpText:         lipgloss.Color("241"),
	WarningText:      lipgloss.Color("220"), // amber
	ErrorText:        lipgloss.Color("196"), // red
}

func (theme Theme) textStyle(completed, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	if completed {
		style = style.Foreground(theme.DoneText).Strikethrough(true)
	}
	if selected {
		style = style.Background(theme.SelectedBackground).Bold(true)
		if !completed {
			style = style.Foreground(theme.SelectedForeground)
		}
	}
	return style
}

func (theme Theme) deleteStyle(selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.FaintText)
	if selected {
		style = style.Foreground(theme.DeleteAccent)
	}
	return style
}
