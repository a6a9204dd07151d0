package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const footerKeys = "[black] s: Scan  x: Stop  r: Refresh  /: Type filter  n: Name filter  j: JSON  c: CSV  i: Details  t: Theme  q: Quit"

func (a *App) refresh() {
	a.buildTable()
	a.updateStatus()
}

func (a *App) updateStatus() {
	a.header.SetText(a.headerText())
	a.footer.SetText(a.footerText())
}

func (a *App) headerText() string {
	var parts []string

	if a.scanner.IsScanning() {
		parts = append(parts,
			"Scanning... Please wait...",
			fmt.Sprintf("Time Elapsed: %d seconds", a.elapsed),
			"Files found: "+humanize.Comma(a.filesFound),
		)
	} else {
		if a.errMessage != "" {
			parts = append(parts, fmt.Sprintf("[%s]%s[-]", a.currentTheme.red.String(), a.errMessage))
		}
		if a.report != nil {
			parts = append(parts,
				fmt.Sprintf("Scan Duration: %.2f seconds", a.report.Seconds()),
				"Files: "+humanize.Comma(int64(a.report.FileCount())),
			)
		}
	}
	parts = append(parts, fmt.Sprintf("Scans performed: %d", a.scanner.ScanCount()))

	return " " + strings.Join(parts, " | ") + " "
}

func (a *App) footerText() string {
	if a.scanner.IsScanning() && a.scanPath != "" {
		scanPath := a.replaceHomeWithTilde(a.scanPath)
		w, _ := a.app.GetScreenSize()
		scanPath = trimLeft(scanPath, w-12)
		return " [white]Scanning: [black]" + scanPath
	}
	if a.notice != "" {
		return " [white]" + a.notice + "[-]  " + footerKeys
	}
	return footerKeys
}

// trimLeft keeps the tail of s that fits in width cells, prefixed with "...".
func trimLeft(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	used := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if used+rw > width {
			break
		}
		used += rw
		i--
	}
	return "..." + string(runes[i:])
}
