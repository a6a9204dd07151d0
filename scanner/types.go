package scanner

import (
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/riadafridishibly/diskviz/volume"
)

const bytesPerMiB = 1 << 20

// FileEntry is a regular file found during traversal. Size is the logical
// file length in bytes.
type FileEntry struct {
	Path string
	Size int64
}

// SizeMB is the size in MiB, the unit used for display and export.
func (f FileEntry) SizeMB() float64 {
	return float64(f.Size) / bytesPerMiB
}

// VolumeReport holds the files of one volume sorted by descending size.
type VolumeReport struct {
	Volume volume.Volume
	Files  []FileEntry
}

// Report is the frozen result of one scan. It is never mutated after being
// handed out, so it may be shared between goroutines.
type Report struct {
	ScanID   uuid.UUID
	Volumes  []VolumeReport
	Duration time.Duration
}

func (r *Report) Seconds() float64 {
	if r == nil {
		return 0
	}
	return r.Duration.Seconds()
}

func (r *Report) FileCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, v := range r.Volumes {
		n += len(v.Files)
	}
	return n
}

// Entry is one filesystem object produced by the walker. Exactly one of Info
// and Err is set for non-directories; directories carry only Path and Type.
type Entry struct {
	Path string
	Type fs.FileMode
	Info fs.FileInfo
	Err  error
}

// ScanError is a terminal scan failure. Per-entry traversal errors never
// become a ScanError.
type ScanError struct {
	Msg string
}

func (e *ScanError) Error() string {
	return e.Msg
}

// ErrNoDiskInfo is returned when a scan produces no volume reports.
var ErrNoDiskInfo = &ScanError{Msg: "Failed to retrieve disk information"}

type EventKind int

const (
	EventProgress EventKind = iota
	EventCompleted
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is delivered to the presentation layer. Report is set for
// EventCompleted, Err for EventFailed, the progress fields for EventProgress.
type Event struct {
	Kind   EventKind
	ScanID uuid.UUID

	Report *Report
	Err    error

	Volume      string
	FilesFound  int64
	CurrentPath string
}
