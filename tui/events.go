package tui

import (
	"time"

	"codeberg.org/tslocum/cview"

	"github.com/riadafridishibly/diskviz/export"
	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/scanner"
)

func (a *App) trySendUIUpdate(f func()) {
	select {
	case a.uiUpdates <- f:
	default:
	}
}

// sendUIUpdate is for updates that must not be dropped, like scan results.
func (a *App) sendUIUpdate(f func()) {
	select {
	case a.uiUpdates <- f:
	case <-a.done:
	}
}

// setRoot queues a SetRoot operation to avoid data races
func (a *App) setRoot(primitive cview.Primitive, focus bool) {
	a.app.QueueUpdateDraw(func() {
		a.app.SetRoot(primitive, focus)
	})
}

func (a *App) processScanEvents() {
	events := a.scanner.Events()
	for {
		select {
		case <-a.done:
			return
		case ev := <-events:
			switch ev.Kind {
			case scanner.EventProgress:
				a.trySendUIUpdate(func() { a.handleProgress(ev) })
			case scanner.EventCompleted, scanner.EventFailed:
				a.sendUIUpdate(func() { a.handleScanned(ev) })
			}
		}
	}
}

// tick drives the elapsed-seconds counter shown while a scan runs.
func (a *App) tick() {
	ticker := time.NewTicker(a.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			if a.scanner.IsScanning() {
				a.trySendUIUpdate(func() {
					a.elapsed++
					a.updateStatus()
				})
			}
		}
	}
}

func (a *App) startScan(refresh bool) {
	a.errMessage = ""
	a.notice = ""
	a.elapsed = 0
	a.filesFound = 0
	a.scanPath = ""
	if refresh {
		a.report = nil
		a.buildTable()
		a.scanID = a.scanner.Refresh()
	} else {
		a.scanID = a.scanner.Scan()
	}
	a.updateStatus()
}

func (a *App) stopScan() {
	a.scanner.Stop()
	a.notice = "Scan stopped"
	a.updateStatus()
}

func (a *App) handleProgress(ev scanner.Event) {
	if ev.ScanID != a.scanID || !a.scanner.IsScanning() {
		return
	}
	a.filesFound = ev.FilesFound
	a.scanPath = ev.CurrentPath
	a.updateStatus()
}

func (a *App) handleScanned(ev scanner.Event) {
	if ev.ScanID != a.scanID {
		logger.Debug().Str("scan_id", ev.ScanID.String()).Msg("Ignoring result of an earlier scan")
		return
	}
	switch ev.Kind {
	case scanner.EventCompleted:
		a.report = ev.Report
		a.errMessage = ""
	case scanner.EventFailed:
		a.errMessage = ev.Err.Error()
	}
	a.buildTable()
	a.updateStatus()
}

func (a *App) exportReport(format export.Format) {
	r := a.report
	go func() {
		path, err := a.exporter.Export(r, format)
		a.sendUIUpdate(func() {
			if err != nil {
				logger.Error().Err(err).Msg("Export failed")
				a.errMessage = err.Error()
			} else {
				a.errMessage = ""
				a.notice = "Exported to " + path
			}
			a.updateStatus()
		})
	}()
}
