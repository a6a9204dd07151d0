package volume

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeUsage(stats map[string]*disk.UsageStat) usageFunc {
	return func(_ context.Context, path string) (*disk.UsageStat, error) {
		st, ok := stats[path]
		if !ok {
			return nil, errors.New("no such mount")
		}
		return st, nil
	}
}

func TestSystemListerList(t *testing.T) {
	l := &SystemLister{
		partitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
			return []disk.PartitionStat{
				{Device: "/dev/sda1", Mountpoint: "/"},
				{Device: "/dev/sda1", Mountpoint: "/"}, // bind mount duplicate
				{Device: "/dev/sdb1", Mountpoint: "/data"},
				{Device: "", Mountpoint: "/gone"},
			}, nil
		},
		usage: fakeUsage(map[string]*disk.UsageStat{
			"/":     {Total: 100 << 30, Free: 60 << 30},
			"/data": {Total: 10 << 30, Free: 10 << 30},
		}),
	}

	vols, err := l.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vols, 2)

	assert.Equal(t, "/dev/sda1", vols[0].Name)
	assert.Equal(t, "/", vols[0].MountPoint)
	assert.InDelta(t, 100.0, vols[0].TotalGiB(), 1e-9)
	assert.InDelta(t, 40.0, vols[0].UsedGiB(), 1e-9)
	assert.InDelta(t, 40.0, vols[0].UsagePercent(), 1e-9)

	assert.Equal(t, "/data", vols[1].MountPoint)
	assert.Equal(t, int64(0), vols[1].Used)
}

func TestSystemListerPartitionError(t *testing.T) {
	l := &SystemLister{
		partitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
			return nil, errors.New("mount table unavailable")
		},
	}

	vols, err := l.List(context.Background())
	assert.Error(t, err)
	assert.Empty(t, vols)
}

func TestUsedClampedToTotal(t *testing.T) {
	usage := fakeUsage(map[string]*disk.UsageStat{
		"/odd": {Total: 10, Free: 20},
	})
	v, err := statVolume(context.Background(), usage, "odd", "/odd")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Used)
	assert.LessOrEqual(t, v.Used, v.Total)
}

func TestRootsListerSkipsUnreadable(t *testing.T) {
	l := &RootsLister{
		roots: []string{"/home/me/src", "/missing"},
		usage: fakeUsage(map[string]*disk.UsageStat{
			"/home/me/src": {Total: 1 << 30, Free: 1 << 29},
		}),
	}

	vols, err := l.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vols, 1)
	assert.Equal(t, "/home/me/src", vols[0].Name)
	assert.Equal(t, "/home/me/src", vols[0].MountPoint)
}

func TestRootsListerRealDir(t *testing.T) {
	dir := t.TempDir()
	vols, err := NewRootsLister([]string{dir}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, vols, 1)
	assert.Greater(t, vols[0].Total, int64(0))
}

func TestUsagePercentEmptyVolume(t *testing.T) {
	assert.Equal(t, 0.0, Volume{}.UsagePercent())
}
