package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorGreen     = lipgloss.Color("#3FB950")
	colorYellow    = lipgloss.Color("#E3B341")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Width(8)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true).
				Width(8)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ╦  ╔═╗╔═╗╔═╗╔═╗╔╗╔  ╔═╗╦  ╔═╗╔╗╔╔╗╔╔═╗╦═╗
  ║  ║╣ ╚═╗╚═╗║ ║║║║  ╠═╝║  ╠═╣║║║║║║║╣ ╠╦╝
  ╩═╝╚═╝╚═╝╚═╝╚═╝╝╚╝  ╩  ╩═╝╩ ╩╝╚╝╝╚╝╚═╝╩╚═
`
