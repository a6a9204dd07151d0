package tui

import (
	"fmt"
	"strings"

	"codeberg.org/tslocum/cview"
	"github.com/dustin/go-humanize"

	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/report"
	"github.com/riadafridishibly/diskviz/scanner"
)

const usageBarWidth = 20

func (a *App) replaceHomeWithTilde(p string) string {
	if !a.config.ReplaceHomeWithTilde || a.userHomeDir == "" {
		return p
	}
	if after, ok := strings.CutPrefix(p, a.userHomeDir); ok {
		p = "~" + after
	}
	return p
}

func usageBar(percent float64) string {
	filled := int(percent / 100 * usageBarWidth)
	filled = max(0, min(usageBarWidth, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", usageBarWidth-filled) + "]"
}

func (a *App) buildTable() *cview.Table {
	theme := a.currentTheme
	table := a.table
	table.Clear()

	row := 0
	for _, view := range report.Filter(a.report, a.extFilter, a.nameFilter) {
		v := view.Volume

		nameCell := cview.NewTableCell(" Disk: " + v.Name)
		nameCell.SetTextColor(theme.blue)
		nameCell.SetSelectable(false)
		table.SetCell(row, 0, nameCell)

		capacityCell := cview.NewTableCell(fmt.Sprintf(" Total Space: %.2f GB  Used Space: %.2f GB ", v.TotalGiB(), v.UsedGiB()))
		capacityCell.SetTextColor(theme.fg)
		capacityCell.SetAlign(cview.AlignRight)
		capacityCell.SetSelectable(false)
		table.SetCell(row, 1, capacityCell)

		usageCell := cview.NewTableCell(fmt.Sprintf("%s %.1f%% (%s files, %s shown)",
			usageBar(v.UsagePercent()), v.UsagePercent(),
			humanize.Comma(int64(view.Scanned)), humanize.Comma(int64(len(view.Files)))))
		usageCell.SetTextColor(theme.aqua)
		usageCell.SetExpansion(1)
		usageCell.SetSelectable(false)
		table.SetCell(row, 2, usageCell)
		row++

		for _, f := range view.Top(a.config.TopN) {
			// The 0th column carries the file as reference for the detail modal
			marker := cview.NewTableCell("   File:")
			marker.SetTextColor(theme.gray)
			marker.SetReference(f)
			table.SetCell(row, 0, marker)

			sizeCell := cview.NewTableCell(" " + report.FormatSize(f.Size) + " ")
			sizeCell.SetTextColor(theme.sizeFg)
			sizeCell.SetAlign(cview.AlignRight)
			table.SetCell(row, 1, sizeCell)

			pathCell := cview.NewTableCell(a.replaceHomeWithTilde(f.Path))
			pathCell.SetTextColor(theme.fg)
			pathCell.SetAlign(cview.AlignLeft)
			pathCell.SetExpansion(1)
			table.SetCell(row, 2, pathCell)
			row++
		}
	}

	table.SetBorder(false)
	table.SetBorders(false)
	table.SetSelectable(true, false)
	table.SetSeparator(' ')

	return table
}

func (a *App) showItemDetail() {
	row, _ := a.table.GetSelection()
	cell := a.table.GetCell(row, 0)
	if cell == nil {
		return
	}

	f, ok := cell.GetReference().(scanner.FileEntry)
	if !ok {
		logger.Debug().Msgf("Expected scanner.FileEntry, but found %T", cell.GetReference())
		return
	}

	var detail strings.Builder
	fmt.Fprintf(&detail, "Path: %s\n", f.Path)
	fmt.Fprintf(&detail, "Size: %s (%s bytes)\n", report.FormatSize(f.Size), humanize.Comma(f.Size))
	fmt.Fprintf(&detail, "Size (IEC): %s\n", humanize.IBytes(uint64(f.Size))) //nolint:gosec // sizes are non-negative

	a.detailModal.SetText(detail.String())
	a.showDetail = true
	a.setRoot(a.detailModal, false)
}
