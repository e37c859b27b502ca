// Package shutdown drains in-flight requests and purges temporary
// uploads on SIGINT/SIGTERM. Grounded on the general
// signal.NotifyContext + http.Server.Shutdown graceful-stop pattern;
// the teacher's cmd/shortener/main.go has no shutdown handling of its
// own.
package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/upload"
)

const drainTimeout = 10 * time.Second

// Resources are the process-owned state a shutdown must release.
type Resources struct {
	Store      *collection.Store
	TempStores []*upload.Store
}

// Wait blocks until a SIGINT/SIGTERM arrives, then gracefully stops
// srv and releases whatever resourcesAt reports at that moment (a
// thunk rather than a fixed value, since the live set of temporary
// upload stores can change across hot reloads while Wait is still
// blocked). A second signal during the drain forces an immediate exit,
// so an operator is never stuck waiting on a hung request.
func Wait(srv *http.Server, resourcesAt func() Resources, logger *zap.SugaredLogger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("shutdown signal received, draining in-flight requests")

	forceExit := make(chan os.Signal, 1)
	signal.Notify(forceExit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-forceExit
		logger.Warn("second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := srv.Shutdown(drainCtx); err != nil {
		logger.Errorw("error draining server", "err", err)
	}

	purge(resourcesAt(), logger)
}

func purge(res Resources, logger *zap.SugaredLogger) {
	for _, store := range res.TempStores {
		if err := store.Purge(); err != nil {
			logger.Errorw("error purging temporary upload directory", "err", err)
		}
	}
	if res.Store != nil {
		res.Store.Clear()
	}
}
