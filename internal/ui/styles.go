// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui holds the terminal styles for the convert CLI.
package ui

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	Red     = "#FF6188" // Errors
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Magenta = "#FF6188" // Titles

	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders
)

var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red)).Bold(true)
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	InfoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)
