package scanner

import (
	"context"
	"io/fs"
	"runtime"

	"github.com/charlievieth/fastwalk"
)

// Walker traverses a directory tree in parallel. Entries are delivered in no
// particular order and fn is called from several goroutines at once.
type Walker struct {
	workers int
	follow  bool
}

// NewWalker returns a walker using workers goroutines (0 means GOMAXPROCS).
// With follow set, symlinks are resolved and symlinked directories traversed;
// fastwalk takes care of link cycles.
func NewWalker(workers int, follow bool) *Walker {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Walker{workers: workers, follow: follow}
}

// Walk calls fn for every entry under root. A failing entry is handed to fn
// with Err set and the walk goes on. The only error that stops the walk is
// ctx being done; an unreadable root is reported as the returned error.
func (w *Walker) Walk(ctx context.Context, root string, fn func(Entry)) error {
	conf := fastwalk.Config{Follow: w.follow, NumWorkers: w.workers}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}

		if err != nil {
			fn(Entry{Path: path, Err: err})
			return nil
		}

		if d.IsDir() {
			fn(Entry{Path: path, Type: fs.ModeDir})
			return nil
		}

		info, err := w.stat(path, d)
		if err != nil {
			fn(Entry{Path: path, Type: d.Type(), Err: err})
			return nil
		}
		fn(Entry{Path: path, Type: d.Type(), Info: info})
		return nil
	}

	err := fastwalk.Walk(&conf, root, walkFn)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (w *Walker) stat(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if w.follow && d.Type()&fs.ModeSymlink != 0 {
		return fastwalk.StatDirEntry(path, d)
	}
	return d.Info()
}
