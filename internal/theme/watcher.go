package theme

import (
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies when the user themes directory changes so the theme
// picker can refresh its list without reopening. Events are coalesced: the
// channel has capacity one and drops while a refresh is already pending.
type Watcher struct {
	fs      *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// WatchDir starts watching the themes directory. The directory must exist
// (callers go through EnsureDir first).
func WatchDir(dir string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}
	w := &Watcher{
		fs:      fs,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changed returns a channel that receives after any .toml file in the
// themes directory is created, modified, renamed, or removed.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".toml") {
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}
