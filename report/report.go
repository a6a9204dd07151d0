// Package report derives display views from a completed scan: filtering by
// extension and name, top-N ranking and unit selection.
package report

import (
	"fmt"
	"strings"

	"github.com/riadafridishibly/diskviz/scanner"
	"github.com/riadafridishibly/diskviz/volume"
)

// DefaultTopN is how many files a view shows per volume.
const DefaultTopN = 5

// Sizes of this many MiB and above are shown in GiB.
const gbThresholdMB = 1000

type Unit string

const (
	UnitMB Unit = "MB"
	UnitGB Unit = "GB"
)

// DisplaySize converts a byte count to the value and unit used on screen and
// in CSV exports.
func DisplaySize(bytes int64) (float64, Unit) {
	mb := float64(bytes) / (1 << 20)
	if mb >= gbThresholdMB {
		return mb / 1024, UnitGB
	}
	return mb, UnitMB
}

// FormatSize renders bytes as e.g. "1.95 GB" or "500.00 MB".
func FormatSize(bytes int64) string {
	v, unit := DisplaySize(bytes)
	return fmt.Sprintf("%.2f %s", v, unit)
}

// VolumeView is one volume's files after filtering, largest first.
type VolumeView struct {
	Volume volume.Volume
	Files  []scanner.FileEntry
	// Total files before filtering
	Scanned int
}

// Top returns at most n of the largest matching files.
func (v VolumeView) Top(n int) []scanner.FileEntry {
	if n < 0 {
		n = 0
	}
	if len(v.Files) <= n {
		return v.Files
	}
	return v.Files[:n]
}

// Match reports whether path passes both filters. An empty filter matches
// everything.
func Match(path, ext, name string) bool {
	return strings.HasSuffix(path, ext) && strings.Contains(path, name)
}

// Filter narrows every volume of r to the files matching ext and name. The
// report is left untouched; each view owns a freshly sorted slice.
func Filter(r *scanner.Report, ext, name string) []VolumeView {
	if r == nil {
		return nil
	}

	views := make([]VolumeView, 0, len(r.Volumes))
	for _, vr := range r.Volumes {
		files := make([]scanner.FileEntry, 0, len(vr.Files))
		for _, f := range vr.Files {
			if Match(f.Path, ext, name) {
				files = append(files, f)
			}
		}
		scanner.SortBySize(files)

		views = append(views, VolumeView{
			Volume:  vr.Volume,
			Files:   files,
			Scanned: len(vr.Files),
		})
	}
	return views
}
