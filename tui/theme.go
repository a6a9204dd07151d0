package tui

import (
	"slices"

	"github.com/gdamore/tcell/v3"
)

type Theme struct {
	Name     string
	bg       tcell.Color
	fg       tcell.Color
	red      tcell.Color
	blue     tcell.Color
	aqua     tcell.Color
	orange   tcell.Color
	gray     tcell.Color
	darkGray tcell.Color
	headerBg tcell.Color
	headerFg tcell.Color
	footerBg tcell.Color
	footerFg tcell.Color
	sizeFg   tcell.Color
	buttonBg tcell.Color
	buttonFg tcell.Color
	modalBg  tcell.Color
	modalFg  tcell.Color
}

var themes = map[string]Theme{
	"gruvbox-dark": {
		Name:     "Gruvbox Dark",
		bg:       tcell.NewRGBColor(40, 40, 40),
		fg:       tcell.NewRGBColor(235, 219, 178),
		red:      tcell.NewRGBColor(251, 73, 52),
		blue:     tcell.NewRGBColor(131, 165, 152),
		aqua:     tcell.NewRGBColor(142, 192, 124),
		orange:   tcell.NewRGBColor(254, 128, 25),
		gray:     tcell.NewRGBColor(146, 131, 116),
		darkGray: tcell.NewRGBColor(60, 56, 54),
		headerBg: tcell.NewRGBColor(215, 153, 33),
		headerFg: tcell.NewRGBColor(40, 40, 40),
		footerBg: tcell.NewRGBColor(60, 56, 54),
		footerFg: tcell.NewRGBColor(235, 219, 178),
		sizeFg:   tcell.NewRGBColor(250, 189, 47),
		buttonBg: tcell.NewRGBColor(215, 153, 33),
		buttonFg: tcell.NewRGBColor(40, 40, 40),
		modalBg:  tcell.NewRGBColor(50, 48, 47),
		modalFg:  tcell.NewRGBColor(235, 219, 178),
	},
	"nord": {
		Name:     "Nord",
		bg:       tcell.NewRGBColor(46, 52, 64),
		fg:       tcell.NewRGBColor(229, 233, 240),
		red:      tcell.NewRGBColor(191, 97, 106),
		blue:     tcell.NewRGBColor(129, 161, 193),
		aqua:     tcell.NewRGBColor(143, 188, 187),
		orange:   tcell.NewRGBColor(208, 135, 112),
		gray:     tcell.NewRGBColor(76, 86, 106),
		darkGray: tcell.NewRGBColor(59, 66, 82),
		headerBg: tcell.NewRGBColor(94, 129, 172),
		headerFg: tcell.NewRGBColor(236, 239, 244),
		footerBg: tcell.NewRGBColor(67, 76, 94),
		footerFg: tcell.NewRGBColor(216, 222, 233),
		sizeFg:   tcell.NewRGBColor(235, 203, 139),
		buttonBg: tcell.NewRGBColor(136, 192, 208),
		buttonFg: tcell.NewRGBColor(46, 52, 64),
		modalBg:  tcell.NewRGBColor(59, 66, 82),
		modalFg:  tcell.NewRGBColor(229, 233, 240),
	},
	"solarized": {
		Name:     "Solarized Dark",
		bg:       tcell.NewRGBColor(0, 43, 54),
		fg:       tcell.NewRGBColor(147, 161, 161),
		red:      tcell.NewRGBColor(220, 50, 47),
		blue:     tcell.NewRGBColor(38, 139, 210),
		aqua:     tcell.NewRGBColor(42, 161, 152),
		orange:   tcell.NewRGBColor(203, 75, 22),
		gray:     tcell.NewRGBColor(88, 110, 117),
		darkGray: tcell.NewRGBColor(7, 54, 66),
		headerBg: tcell.NewRGBColor(38, 139, 210),
		headerFg: tcell.NewRGBColor(253, 246, 227),
		footerBg: tcell.NewRGBColor(7, 54, 66),
		footerFg: tcell.NewRGBColor(147, 161, 161),
		sizeFg:   tcell.NewRGBColor(181, 137, 0),
		buttonBg: tcell.NewRGBColor(42, 161, 152),
		buttonFg: tcell.NewRGBColor(0, 43, 54),
		modalBg:  tcell.NewRGBColor(7, 54, 66),
		modalFg:  tcell.NewRGBColor(238, 232, 213),
	},
}

// getThemeNames returns the theme keys in a stable order for the selector.
func getThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
