package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/riadafridishibly/diskviz/volume"
)

const eventTimeout = 5 * time.Second

type staticLister struct {
	volumes []volume.Volume
	err     error
}

func (l staticLister) List(context.Context) ([]volume.Volume, error) {
	return l.volumes, l.err
}

// gatedLister blocks its first call until release is closed.
type gatedLister struct {
	volumes []volume.Volume
	release chan struct{}
	calls   atomic.Int32
}

func (l *gatedLister) List(ctx context.Context) ([]volume.Volume, error) {
	if l.calls.Add(1) == 1 {
		<-l.release
	}
	return l.volumes, nil
}

type ScannerTestSuite struct {
	suite.Suite
	root string
}

func (s *ScannerTestSuite) SetupTest() {
	s.root = s.T().TempDir()
}

func (s *ScannerTestSuite) writeSparse(name string, size int64) string {
	path := filepath.Join(s.root, name)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	s.Require().NoError(err)
	s.Require().NoError(f.Truncate(size))
	s.Require().NoError(f.Close())
	return path
}

func (s *ScannerTestSuite) volumeAt(name, root string) volume.Volume {
	return volume.Volume{Name: name, MountPoint: root, Total: 100 << 30, Used: 40 << 30}
}

func (s *ScannerTestSuite) nextTerminal(sc *Scanner) Event {
	timeout := time.After(eventTimeout)
	for {
		select {
		case ev := <-sc.Events():
			if ev.Kind != EventProgress {
				return ev
			}
		case <-timeout:
			s.FailNow("timed out waiting for scan result")
			return Event{}
		}
	}
}

func (s *ScannerTestSuite) TestRunOrdersFilesBySize() {
	s.writeSparse("small.log", 10<<20)
	s.writeSparse("big/movie.mkv", 2000<<20)
	s.writeSparse("mid/archive.tar", 500<<20)

	sc := New(staticLister{volumes: []volume.Volume{s.volumeAt("disk0", s.root)}}, NewWalker(4, false))
	report, err := sc.Run(context.Background())
	s.Require().NoError(err)

	s.Require().Len(report.Volumes, 1)
	files := report.Volumes[0].Files
	s.Require().Len(files, 3)
	s.Equal(int64(2000<<20), files[0].Size)
	s.Equal(int64(500<<20), files[1].Size)
	s.Equal(int64(10<<20), files[2].Size)
	s.Equal(filepath.Join(s.root, "big", "movie.mkv"), files[0].Path)
	s.Equal(int64(1), sc.ScanCount())
	s.Equal(3, report.FileCount())
	s.GreaterOrEqual(report.Seconds(), 0.0)
}

func (s *ScannerTestSuite) TestRunSkipsVolumesWithoutCapacity() {
	other := s.T().TempDir()
	s.writeSparse("a", 1)

	vols := []volume.Volume{
		{Name: "proc", MountPoint: other, Total: 0},
		s.volumeAt("disk0", s.root),
		{Name: "weird", MountPoint: other, Total: -1},
	}
	report, err := New(staticLister{volumes: vols}, NewWalker(2, false)).Run(context.Background())
	s.Require().NoError(err)
	s.Require().Len(report.Volumes, 1)
	s.Equal("disk0", report.Volumes[0].Volume.Name)
}

func (s *ScannerTestSuite) TestRunKeepsEnumerationOrder() {
	a, b, c := s.T().TempDir(), s.T().TempDir(), s.T().TempDir()
	vols := []volume.Volume{s.volumeAt("a", a), s.volumeAt("b", b), s.volumeAt("c", c)}

	report, err := New(staticLister{volumes: vols}, NewWalker(2, false)).Run(context.Background())
	s.Require().NoError(err)
	s.Require().Len(report.Volumes, 3)
	for i, name := range []string{"a", "b", "c"} {
		s.Equal(name, report.Volumes[i].Volume.Name)
	}
}

func (s *ScannerTestSuite) TestRunEmptyVolumeIsStillReported() {
	report, err := New(staticLister{volumes: []volume.Volume{s.volumeAt("empty", s.root)}}, NewWalker(2, false)).
		Run(context.Background())
	s.Require().NoError(err)
	s.Require().Len(report.Volumes, 1)
	s.NotNil(report.Volumes[0].Files)
	s.Empty(report.Volumes[0].Files)
}

func (s *ScannerTestSuite) TestRunNoVolumes() {
	sc := New(staticLister{}, NewWalker(2, false))
	report, err := sc.Run(context.Background())
	s.Nil(report)
	s.ErrorIs(err, ErrNoDiskInfo)
	s.Equal("Failed to retrieve disk information", err.Error())
	s.Equal(int64(1), sc.ScanCount())
}

func (s *ScannerTestSuite) TestRunEnumerationErrorIsScanError() {
	_, err := New(staticLister{err: errors.New("no mount table")}, NewWalker(2, false)).Run(context.Background())
	var scanErr *ScanError
	s.Require().ErrorAs(err, &scanErr)
	s.Equal(ErrNoDiskInfo.Msg, scanErr.Msg)
}

func (s *ScannerTestSuite) TestRunCancelled() {
	s.writeSparse("x", 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := New(staticLister{volumes: []volume.Volume{s.volumeAt("d", s.root)}}, NewWalker(2, false))
	report, err := sc.Run(ctx)
	s.Nil(report)
	s.ErrorIs(err, context.Canceled)
	s.Equal(int64(0), sc.ScanCount())
}

func (s *ScannerTestSuite) TestScanDeliversCompleted() {
	s.writeSparse("one", 1024)

	sc := New(staticLister{volumes: []volume.Volume{s.volumeAt("d", s.root)}}, NewWalker(2, false))
	id := sc.Scan()
	s.True(sc.IsScanning())

	ev := s.nextTerminal(sc)
	s.Equal(EventCompleted, ev.Kind)
	s.Equal(id, ev.ScanID)
	s.Require().NotNil(ev.Report)
	s.Equal(id, ev.Report.ScanID)
	s.Equal(1, ev.Report.FileCount())

	s.False(sc.IsScanning())
	s.Equal(int64(1), sc.ScanCount())
}

func (s *ScannerTestSuite) TestScanDeliversFailed() {
	sc := New(staticLister{}, NewWalker(2, false))
	id := sc.Scan()

	ev := s.nextTerminal(sc)
	s.Equal(EventFailed, ev.Kind)
	s.Equal(id, ev.ScanID)
	s.ErrorIs(ev.Err, ErrNoDiskInfo)
	s.False(sc.IsScanning())
}

func (s *ScannerTestSuite) TestStopClearsFlagAndDiscardsResult() {
	lister := &gatedLister{volumes: []volume.Volume{s.volumeAt("d", s.root)}, release: make(chan struct{})}
	sc := New(lister, NewWalker(2, false))

	sc.Scan()
	s.True(sc.IsScanning())
	sc.Stop()
	s.False(sc.IsScanning())

	close(lister.release)

	select {
	case ev := <-sc.Events():
		s.Failf("unexpected event after stop", "kind=%s", ev.Kind)
	case <-time.After(300 * time.Millisecond):
	}
	s.False(sc.IsScanning())
}

func (s *ScannerTestSuite) TestStopWhenIdleIsNoop() {
	sc := New(staticLister{}, NewWalker(1, false))
	sc.Stop()
	s.False(sc.IsScanning())
}

func (s *ScannerTestSuite) TestSecondScanSupersedesFirst() {
	s.writeSparse("f", 10)
	lister := &gatedLister{volumes: []volume.Volume{s.volumeAt("d", s.root)}, release: make(chan struct{})}
	sc := New(lister, NewWalker(2, false))

	first := sc.Scan()
	s.Eventually(func() bool { return lister.calls.Load() == 1 }, eventTimeout, time.Millisecond)
	second := sc.Refresh()
	s.NotEqual(first, second)

	ev := s.nextTerminal(sc)
	s.Equal(second, ev.ScanID)
	s.Equal(EventCompleted, ev.Kind)

	close(lister.release)
	select {
	case ev := <-sc.Events():
		if ev.Kind != EventProgress {
			s.Failf("stale result delivered", "scan=%s", ev.ScanID)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func (s *ScannerTestSuite) TestProgressEvents() {
	for i := range 20 {
		s.writeSparse(filepath.Join("p", string(rune('a'+i))), int64(i))
	}

	sc := New(staticLister{volumes: []volume.Volume{s.volumeAt("d", s.root)}}, NewWalker(2, false),
		WithProgressInterval(time.Nanosecond))
	id := sc.Scan()

	sawProgress := false
	timeout := time.After(eventTimeout)
	for done := false; !done; {
		select {
		case ev := <-sc.Events():
			switch ev.Kind {
			case EventProgress:
				sawProgress = true
				s.Equal(id, ev.ScanID)
				s.Equal("d", ev.Volume)
				s.Positive(ev.FilesFound)
			default:
				done = true
			}
		case <-timeout:
			s.FailNow("timed out")
		}
	}
	s.True(sawProgress)
}

func (s *ScannerTestSuite) TestUndrainedResultReleasedByNextScan() {
	s.writeSparse("a.bin", 10)
	sc := New(staticLister{volumes: []volume.Volume{s.volumeAt("disk0", s.root)}}, NewWalker(1, false),
		WithEventBuffer(0))

	sc.Scan()
	// The first result has nowhere to go until the next scan starts.
	s.Eventually(func() bool { return !sc.IsScanning() }, eventTimeout, 5*time.Millisecond)

	second := sc.Scan()
	ev := s.nextTerminal(sc)
	s.Equal(EventCompleted, ev.Kind)
	s.Equal(second, ev.ScanID)
	s.Equal(int64(2), sc.ScanCount())
}

func TestScannerTestSuite(t *testing.T) {
	suite.Run(t, new(ScannerTestSuite))
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "progress", EventProgress.String())
	assert.Equal(t, "completed", EventCompleted.String())
	assert.Equal(t, "failed", EventFailed.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}

func TestNilReportHelpers(t *testing.T) {
	var r *Report
	require.Equal(t, 0, r.FileCount())
	require.Equal(t, 0.0, r.Seconds())
}
