package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette names the [lipgloss.Style] used for each part of the reorder view.
type Palette struct {
	title  lipgloss.Style // setlist header
	saved  lipgloss.Style // confirmed by the server
	err    lipgloss.Style // failed request, order restored
	held   lipgloss.Style // grabbed row
	status lipgloss.Style // in-flight and hint lines
}

func NewPalette(title, saved, err, held, status string) *Palette {
	return &Palette{
		title:  NewBold(title).MarginBottom(1),
		saved:  NewBold(saved),
		err:    NewBold(err),
		held:   NewBold(held),
		status: NewEm(status),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
