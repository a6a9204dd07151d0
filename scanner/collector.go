package scanner

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
)

// Collector accumulates regular files from concurrent walker callbacks.
// Collect may be called from any number of goroutines; Files must only be
// called once every writer is done.
type Collector struct {
	mu    sync.Mutex
	files []FileEntry

	found atomic.Int64
}

func NewCollector() *Collector {
	return &Collector{}
}

// Collect records e if it is a successfully statted regular file and reports
// whether it did.
func (c *Collector) Collect(e Entry) bool {
	if e.Err != nil || e.Info == nil || !e.Info.Mode().IsRegular() {
		return false
	}

	f := FileEntry{Path: e.Path, Size: e.Info.Size()}

	c.mu.Lock()
	c.files = append(c.files, f)
	c.mu.Unlock()

	c.found.Add(1)
	return true
}

// Len is safe to call while collection is running.
func (c *Collector) Len() int64 {
	return c.found.Load()
}

// Files sorts the buffer by descending size and returns it.
func (c *Collector) Files() []FileEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	SortBySize(c.files)
	if c.files == nil {
		return []FileEntry{}
	}
	return c.files
}

// SortBySize orders files largest first. Equal sizes keep no particular order.
func SortBySize(files []FileEntry) {
	slices.SortFunc(files, func(a, b FileEntry) int {
		return cmp.Compare(b.Size, a.Size)
	})
}
