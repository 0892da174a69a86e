package prefabs

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/getsentry/sentry-go"
	"github.com/zeebo/xxh3"
)

const debounce = 100 * time.Millisecond

// Watcher reports prefab and script files whose contents changed on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	hashes  contentHashes
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	hashes := contentHashes{}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		hashes.seed(dir)
	}

	watcher := &Watcher{
		watcher: w,
		hashes:  hashes,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer sentry.Recover()

	pending := debouncer{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			pending.touch(event.Name, now)
			wait, _ := pending.next(now)
			timer.Reset(wait)
			fire = timer.C
		case now := <-fire:
			for _, path := range pending.due(now) {
				if !w.hashes.changed(path) {
					continue
				}
				slog.Debug("prefabs: file changed", "file", path)
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
			}
			if wait, ok := pending.next(time.Now()); ok {
				timer.Reset(wait)
			} else {
				fire = nil
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				slog.Warn("prefabs: dropped watcher error", "err", err)
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

// debouncer holds the time each path becomes quiet. Every touch pushes the
// deadline out, so a burst of saves is reported once, after the last one.
type debouncer map[string]time.Time

func (d debouncer) touch(path string, now time.Time) {
	d[path] = now.Add(debounce)
}

// due removes and returns the paths whose deadline has passed, sorted.
func (d debouncer) due(now time.Time) []string {
	var out []string
	for path, at := range d {
		if !at.After(now) {
			out = append(out, path)
			delete(d, path)
		}
	}
	sort.Strings(out)
	return out
}

// next returns the wait until the earliest pending deadline.
func (d debouncer) next(now time.Time) (time.Duration, bool) {
	var wait time.Duration
	found := false
	for _, at := range d {
		w := at.Sub(now)
		if w < 0 {
			w = 0
		}
		if !found || w < wait {
			wait, found = w, true
		}
	}
	return wait, found
}

// contentHashes remembers the xxh3 hash of each watched file so saves that do
// not change the bytes are ignored.
type contentHashes map[string]uint64

func (h contentHashes) seed(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isSpecFile(path) && !isScriptFile(path) {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			h[path] = xxh3.Hash(data)
		}
	}
}

// changed reports whether path differs from the last content seen. Files that
// can no longer be read always count as changed.
func (h contentHashes) changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		delete(h, path)
		return true
	}
	sum := xxh3.Hash(data)
	if prev, ok := h[path]; ok && prev == sum {
		return false
	}
	h[path] = sum
	return true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
