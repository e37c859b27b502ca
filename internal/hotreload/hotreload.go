// Package hotreload watches the mock root for changes and rebuilds the
// live routing table without restarting the process (§5). fsnotify has
// no precedent elsewhere in the retrieved pack to imitate; its API here
// follows the library's own documented usage (NewWatcher, recursive Add
// per directory, Events/Errors select loop) since go.mod already
// carries it as a direct dependency.
package hotreload

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rawen554/mockhive/internal/routebuilder"
	"github.com/rawen554/mockhive/internal/routemanager"
	"github.com/rawen554/mockhive/internal/upload"
)

const debounce = 300 * time.Millisecond

// Live holds the currently served engine, swapped atomically on every
// successful rebuild so in-flight requests always see a consistent
// table (§5: "the live routing table is replaced atomically").
type Live struct {
	ptr      atomic.Pointer[gin.Engine]
	tempDirs atomic.Pointer[[]*upload.Store]
}

// Current returns the engine in effect right now.
func (l *Live) Current() *gin.Engine {
	return l.ptr.Load()
}

// TempUploadDirs returns the {upload} stores marked temporary in the
// build currently live, for shutdown-time purging.
func (l *Live) TempUploadDirs() []*upload.Store {
	if p := l.tempDirs.Load(); p != nil {
		return *p
	}
	return nil
}

func (l *Live) store(e *gin.Engine, tempDirs []*upload.Store) {
	l.ptr.Store(e)
	l.tempDirs.Store(&tempDirs)
}

// Watcher rebuilds the live table whenever the mock root changes.
type Watcher struct {
	root   string
	deps   routebuilder.Dependencies
	rmCfg  routemanager.Config
	logger *zap.SugaredLogger
	live   *Live
}

// New builds a Watcher. The first build happens synchronously so
// callers always have a populated Live before Run starts watching.
func New(root string, deps routebuilder.Dependencies, rmCfg routemanager.Config, logger *zap.SugaredLogger) (*Watcher, *Live, error) {
	w := &Watcher{root: root, deps: deps, rmCfg: rmCfg, logger: logger, live: &Live{}}
	if err := w.rebuild(); err != nil {
		return nil, nil, err
	}
	return w, w.live, nil
}

// Run watches the mock root until ctx is canceled, rebuilding the live
// table on every coalesced batch of changes. Rebuild failures are
// logged and the previous live table is retained unchanged (§7).
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addRecursive(fsw, w.root); err != nil {
		return err
	}

	var timer *time.Timer
	pending := false
	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.isUploadPath(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(fsw, ev.Name)
				}
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("hot reload watch error", "err", err)

		case <-timerC():
			if pending {
				pending = false
				if err := w.rebuild(); err != nil {
					w.logger.Errorw("hot reload rebuild failed, keeping previous table", "err", err)
				} else {
					w.logger.Infow("mock root changed, routing table reloaded")
				}
			}
		}
	}
}

func (w *Watcher) rebuild() error {
	result, err := routebuilder.Build(w.root, w.deps)
	if err != nil {
		return err
	}
	engine := routemanager.Build(result.Records, w.deps.JWT, w.logger, w.rmCfg)
	w.live.store(engine, result.TempUploadDirs)
	return nil
}

// isUploadPath reports whether name lives under an {upload} directory;
// files dropped there by the upload API must not trigger a reload.
func (w *Watcher) isUploadPath(name string) bool {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.Contains(part, "{upload") {
			return true
		}
	}
	return false
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}
