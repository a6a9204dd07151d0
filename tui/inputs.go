package tui

import (
	"github.com/gdamore/tcell/v3"

	"github.com/riadafridishibly/diskviz/export"
)

func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if a.showDetail || a.showTheme {
		// Let modals handle their own input
		switch event.Str() {
		case "l":
			return tcell.NewEventKey(tcell.KeyRight, tcell.KeyNames[tcell.KeyRight], tcell.ModNone)
		case "h":
			return tcell.NewEventKey(tcell.KeyLeft, tcell.KeyNames[tcell.KeyLeft], tcell.ModNone)
		}
		return event
	}

	// Typing into a filter must not trigger shortcuts.
	if a.filterFocused() {
		return event
	}

	switch event.Str() {
	case "s", "S":
		a.startScan(false)
		return nil
	case "x", "X":
		a.stopScan()
		return nil
	case "r", "R":
		a.startScan(true)
		return nil
	case "j", "J":
		a.exportReport(export.FormatJSON)
		return nil
	case "c", "C":
		a.exportReport(export.FormatCSV)
		return nil
	case "/":
		a.app.SetFocus(a.extInput)
		return nil
	case "n", "N":
		a.app.SetFocus(a.nameInput)
		return nil
	case "i", "I":
		a.showItemDetail()
		return nil
	case "t", "T":
		a.showThemeSelector()
		return nil
	case "q", "Q":
		a.Quit()
		return nil
	}

	return event
}

func (a *App) filterFocused() bool {
	focus := a.app.GetFocus()
	return focus == a.extInput || focus == a.nameInput
}

// filterDone hands focus back to the table once the user leaves a filter.
func (a *App) filterDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter, tcell.KeyEscape:
		a.app.SetFocus(a.table)
	case tcell.KeyTab:
		if a.app.GetFocus() == a.extInput {
			a.app.SetFocus(a.nameInput)
		} else {
			a.app.SetFocus(a.extInput)
		}
	}
}

func (a *App) filterChanged(ext, name string) {
	a.extFilter = ext
	a.nameFilter = name
	a.buildTable()
}
