// Package export writes a scan report to disk as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/report"
	"github.com/riadafridishibly/diskviz/scanner"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func (f Format) FileName() string {
	return "disk_usage." + string(f)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Error is an export failure. The report is unaffected and the export can
// be retried.
type Error struct {
	Format Format
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s to %s: %v", e.Format, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Exporter writes reports to fixed file names inside dir, overwriting
// previous exports.
type Exporter struct {
	dir string
}

func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export serializes the full, unfiltered report and returns the file path.
// A nil report is exported as an empty one.
func (e *Exporter) Export(r *scanner.Report, format Format) (string, error) {
	var write func(io.Writer, *scanner.Report) error
	switch format {
	case FormatJSON:
		write = JSON
	case FormatCSV:
		write = CSV
	default:
		return "", &Error{Format: format, Err: errors.New("unsupported format")}
	}

	path := filepath.Join(e.dir, format.FileName())
	if err := writeFile(path, r, write); err != nil {
		logger.Error().Str("path", path).Str("format", string(format)).Err(err).Msg("Export failed")
		return "", &Error{Format: format, Path: path, Err: err}
	}

	logger.Info().Str("path", path).Int("files", r.FileCount()).Msg("Report exported")
	return path, nil
}

func writeFile(path string, r *scanner.Report, write func(io.Writer, *scanner.Report) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type fileRecord struct {
	Path   string  `json:"path"`
	SizeMB float64 `json:"size_mb"`
}

type diskRecord struct {
	Name       string       `json:"name"`
	TotalSpace float64      `json:"total_space"`
	UsedSpace  float64      `json:"used_space"`
	Files      []fileRecord `json:"files"`
}

// JSON writes the report as an indented array of disk objects. Capacities
// are in GiB and file sizes in MiB, at full precision.
func JSON(w io.Writer, r *scanner.Report) error {
	disks := make([]diskRecord, 0)
	if r != nil {
		for _, vr := range r.Volumes {
			files := make([]fileRecord, 0, len(vr.Files))
			for _, f := range vr.Files {
				files = append(files, fileRecord{Path: f.Path, SizeMB: f.SizeMB()})
			}
			disks = append(disks, diskRecord{
				Name:       vr.Volume.Name,
				TotalSpace: vr.Volume.TotalGiB(),
				UsedSpace:  vr.Volume.UsedGiB(),
				Files:      files,
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(disks)
}

// CSV writes one headerless row per file:
// disk name, total GiB, used GiB, path, size, unit.
func CSV(w io.Writer, r *scanner.Report) error {
	cw := csv.NewWriter(w)
	if r != nil {
		for _, vr := range r.Volumes {
			total := formatFloat(vr.Volume.TotalGiB())
			used := formatFloat(vr.Volume.UsedGiB())
			for _, f := range vr.Files {
				size, unit := report.DisplaySize(f.Size)
				record := []string{vr.Volume.Name, total, used, f.Path, formatFloat(size), string(unit)}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
