// Package volume lists the storage volumes mounted on the host together with
// their capacity accounting.
package volume

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/riadafridishibly/diskviz/logger"
)

const bytesPerGiB = 1 << 30

// Volume is a mounted filesystem as seen at enumeration time.
type Volume struct {
	Name       string
	MountPoint string
	Total      int64 // bytes
	Used       int64 // bytes, 0 <= Used <= Total
}

func (v Volume) TotalGiB() float64 {
	return float64(v.Total) / bytesPerGiB
}

func (v Volume) UsedGiB() float64 {
	return float64(v.Used) / bytesPerGiB
}

// UsagePercent returns used/total in percent, or 0 for an empty volume.
func (v Volume) UsagePercent() float64 {
	if v.Total <= 0 {
		return 0
	}
	return float64(v.Used) / float64(v.Total) * 100
}

// Lister enumerates volumes. An empty result is valid; callers decide
// whether that is a failure.
type Lister interface {
	List(ctx context.Context) ([]Volume, error)
}

type (
	partitionsFunc func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usageFunc      func(ctx context.Context, path string) (*disk.UsageStat, error)
)

// SystemLister reads the OS mount table.
type SystemLister struct {
	all        bool
	partitions partitionsFunc
	usage      usageFunc
}

// NewSystemLister returns a lister over the host mount table. With all set,
// virtual and pseudo filesystems are included as well.
func NewSystemLister(all bool) *SystemLister {
	return &SystemLister{
		all:        all,
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
	}
}

func (l *SystemLister) List(ctx context.Context) ([]Volume, error) {
	parts, err := l.partitions(ctx, l.all)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	seen := make(map[string]struct{}, len(parts))
	volumes := make([]Volume, 0, len(parts))
	for _, p := range parts {
		if _, ok := seen[p.Mountpoint]; ok {
			continue
		}
		seen[p.Mountpoint] = struct{}{}

		name := p.Device
		if name == "" {
			name = p.Mountpoint
		}

		v, err := statVolume(ctx, l.usage, name, p.Mountpoint)
		if err != nil {
			logger.Debug().Str("mount_point", p.Mountpoint).Err(err).Msg("Skipping unreadable volume")
			continue
		}
		volumes = append(volumes, v)
	}

	return volumes, nil
}

// RootsLister turns explicit directories into pseudo volumes, using the
// capacity of the filesystem that contains each of them.
type RootsLister struct {
	roots []string
	usage usageFunc
}

func NewRootsLister(roots []string) *RootsLister {
	return &RootsLister{roots: roots, usage: disk.UsageWithContext}
}

func (l *RootsLister) List(ctx context.Context) ([]Volume, error) {
	volumes := make([]Volume, 0, len(l.roots))
	for _, root := range l.roots {
		v, err := statVolume(ctx, l.usage, root, root)
		if err != nil {
			logger.Warn().Str("root", root).Err(err).Msg("Skipping unreadable root")
			continue
		}
		volumes = append(volumes, v)
	}
	return volumes, nil
}

func statVolume(ctx context.Context, usage usageFunc, name, mountPoint string) (Volume, error) {
	st, err := usage(ctx, mountPoint)
	if err != nil {
		return Volume{}, err
	}

	// gopsutil reports Free as space available to unprivileged users, so this
	// counts reserved blocks as used.
	total := st.Total
	var used uint64
	if st.Free < total {
		used = total - st.Free
	}

	return Volume{
		Name:       name,
		MountPoint: mountPoint,
		Total:      int64(total), //nolint:gosec // disk sizes fit in int64
		Used:       int64(used),  //nolint:gosec // disk sizes fit in int64
	}, nil
}
