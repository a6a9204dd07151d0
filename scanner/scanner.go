package scanner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/volume"
)

const (
	defaultProgressInterval = 250 * time.Millisecond
	defaultEventBuffer      = 100
)

type Scanner struct {
	lister volume.Lister
	walker *Walker

	// Progress is throttled to one event per interval per volume
	progressInterval time.Duration
	eventBuffer      int

	// Progress and terminal events for the presentation layer
	events chan Event

	// Visible scanning flag, cleared immediately by Stop
	scanning atomic.Bool

	// Pipelines that ran to completion, successful or not
	scanCount atomic.Int64

	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
}

type Option func(*Scanner)

func WithProgressInterval(d time.Duration) Option {
	return func(s *Scanner) {
		s.progressInterval = d
	}
}

// WithEventBuffer sets the capacity of the Events channel.
func WithEventBuffer(n int) Option {
	return func(s *Scanner) {
		s.eventBuffer = n
	}
}

func New(lister volume.Lister, walker *Walker, opts ...Option) *Scanner {
	s := &Scanner{
		lister:           lister,
		walker:           walker,
		progressInterval: defaultProgressInterval,
		eventBuffer:      defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make(chan Event, max(s.eventBuffer, 0))
	return s
}

// Scan starts a scan in the background and returns its id. A scan that is
// already running is superseded: its context is cancelled and whatever it
// produces is dropped.
func (s *Scanner) Scan() uuid.UUID {
	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.current = id
	s.cancel = cancel
	s.scanning.Store(true)
	s.mu.Unlock()

	logger.Info().Str("scan_id", id.String()).Msg("Scan started")

	go s.background(ctx, cancel, id)

	return id
}

// Refresh discards the notion of a current result and scans again.
func (s *Scanner) Refresh() uuid.UUID {
	return s.Scan()
}

// Stop clears the scanning flag right away. The pipeline is asked to wind
// down but may keep running for a while; its result is discarded.
func (s *Scanner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanning.CompareAndSwap(true, false) {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	logger.Info().Str("scan_id", s.current.String()).Msg("Scan stopped")
}

func (s *Scanner) IsScanning() bool {
	return s.scanning.Load()
}

func (s *Scanner) ScanCount() int64 {
	return s.scanCount.Load()
}

// Events delivers progress and at most one terminal event per scan. A
// terminal event nobody receives is dropped once the next Scan starts.
func (s *Scanner) Events() <-chan Event {
	return s.events
}

// Run executes one scan pipeline synchronously.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	return s.run(ctx, uuid.New())
}

func (s *Scanner) background(ctx context.Context, cancel context.CancelFunc, id uuid.UUID) {
	defer cancel()

	report, err := s.run(ctx, id)

	s.mu.Lock()
	stale := s.current != id || !s.scanning.Load()
	if !stale {
		s.scanning.Store(false)
	}
	s.mu.Unlock()

	if stale {
		logger.Debug().Str("scan_id", id.String()).Msg("Discarding result of superseded scan")
		return
	}

	ev := Event{Kind: EventCompleted, ScanID: id, Report: report}
	if err != nil {
		ev = Event{Kind: EventFailed, ScanID: id, Err: err}
	}

	// The next Scan cancels ctx, so an undrained channel holds at most one
	// blocked sender.
	select {
	case s.events <- ev:
	case <-ctx.Done():
		logger.Debug().Str("scan_id", id.String()).Msg("Dropping undelivered scan result")
	}
}

func (s *Scanner) run(ctx context.Context, id uuid.UUID) (*Report, error) {
	start := time.Now()

	volumes, err := s.lister.List(ctx)
	if err != nil {
		logger.Warn().Str("scan_id", id.String()).Err(err).Msg("Volume enumeration failed")
		volumes = nil
	}

	qualifying := make([]volume.Volume, 0, len(volumes))
	for _, v := range volumes {
		if v.Total <= 0 {
			logger.Debug().Str("scan_id", id.String()).Str("volume", v.Name).Msg("Skipping volume without capacity")
			continue
		}
		qualifying = append(qualifying, v)
	}

	reports := make([]VolumeReport, len(qualifying))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range qualifying {
		g.Go(func() error {
			files, err := s.scanVolume(gctx, id, v)
			if err != nil {
				return err
			}
			reports[i] = VolumeReport{Volume: v, Files: files}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.scanCount.Add(1)

	if len(reports) == 0 {
		logger.Warn().Str("scan_id", id.String()).Msg("No volumes scanned")
		return nil, ErrNoDiskInfo
	}

	report := &Report{ScanID: id, Volumes: reports, Duration: time.Since(start)}
	logger.Info().
		Str("scan_id", id.String()).
		Int("volumes", len(reports)).
		Int("files", report.FileCount()).
		Dur("duration", report.Duration).
		Msg("Scan completed")

	return report, nil
}

func (s *Scanner) scanVolume(ctx context.Context, id uuid.UUID, v volume.Volume) ([]FileEntry, error) {
	c := NewCollector()
	progress := rate.Sometimes{Interval: s.progressInterval}

	walkFn := func(e Entry) {
		if e.Err != nil {
			logger.Debug().Str("path", e.Path).Err(e.Err).Msg("Skipping entry")
			return
		}
		if !c.Collect(e) {
			return
		}
		progress.Do(func() {
			s.trySendEvent(Event{
				Kind:        EventProgress,
				ScanID:      id,
				Volume:      v.Name,
				FilesFound:  c.Len(),
				CurrentPath: e.Path,
			})
		})
	}

	if err := s.walker.Walk(ctx, v.MountPoint, walkFn); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.Warn().Str("scan_id", id.String()).Str("mount_point", v.MountPoint).Err(err).Msg("Walk ended early")
	}

	files := c.Files()
	logger.Debug().
		Str("scan_id", id.String()).
		Str("volume", v.Name).
		Int("files", len(files)).
		Msg("Volume collected")

	return files, nil
}

func (s *Scanner) trySendEvent(e Event) {
	select {
	case s.events <- e:
	default:
	}
}
