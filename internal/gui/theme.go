//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	colorCorrect     fyne.ThemeColorName = "wpsCorrect"
	colorIncorrect   fyne.ThemeColorName = "wpsIncorrect"
	colorPending     fyne.ThemeColorName = "wpsPending"
	colorCurrent     fyne.ThemeColorName = "wpsCurrent"
	colorPlaceholder fyne.ThemeColorName = "wpsPlaceholder"
)

var (
	timerColor = color.RGBA{212, 212, 212, 255}
	glowColor  = color.RGBA{255, 255, 0, 255}
)

type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{30, 30, 30, 255}
	case theme.ColorNameForeground:
		return color.RGBA{212, 212, 212, 255}
	case colorCorrect:
		return color.RGBA{90, 90, 90, 255}
	case colorIncorrect:
		return color.RGBA{244, 71, 71, 255}
	case colorPending:
		return color.RGBA{140, 140, 140, 255}
	case colorCurrent:
		return color.RGBA{240, 240, 240, 255}
	case colorPlaceholder:
		return color.RGBA{74, 74, 74, 255}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return 22
	}
	return theme.DefaultTheme().Size(name)
}
