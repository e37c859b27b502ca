// Package server is the composition root: it wires config, the TOML
// loader, every routebuilder collaborator, the initial build, hot
// reload, and graceful shutdown together into one running process.
// Modeled on the teacher's cmd/shortener/main.go + internal/app.App
// split, widened to the extra collaborators this domain needs.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rawen554/mockhive/internal/collection"
	"github.com/rawen554/mockhive/internal/config"
	"github.com/rawen554/mockhive/internal/graphqlengine"
	"github.com/rawen554/mockhive/internal/hotreload"
	"github.com/rawen554/mockhive/internal/jgd"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/rawen554/mockhive/internal/routebuilder"
	"github.com/rawen554/mockhive/internal/routemanager"
	"github.com/rawen554/mockhive/internal/shutdown"
	"github.com/rawen554/mockhive/internal/sqlengine"
	"github.com/rawen554/mockhive/internal/tomlconfig"
)

// Run loads configuration, performs the first build, starts the HTTP
// server and the hot-reload watcher, and blocks until a shutdown
// signal is handled. It returns the first error met while loading
// config or building the initial table (§7); a failure of the listener
// itself ends the process through logger.Fatalw instead.
func Run(cfg config.ServerConfig, logger *zap.SugaredLogger) error {
	serverTomlPath := filepath.Join(cfg.Folder, "..", "rs-mock-server.toml")
	loader, err := tomlconfig.Load(serverTomlPath)
	if err != nil {
		return err
	}
	cfg = overlayServerFile(cfg, loader)

	store := collection.NewStore()
	jwtSvc := jwtauth.New("")
	sqlEngine, err := sqlengine.New()
	if err != nil {
		return fmt.Errorf("starting sql engine: %w", err)
	}
	defer sqlEngine.Close()

	deps := routebuilder.Dependencies{
		Store:     store,
		JWT:       jwtSvc,
		SQLEngine: sqlEngine,
		JGD:       jgd.New(),
		GraphQL:   graphqlengine.New(store),
	}

	rmCfg := routemanager.Config{
		EnableCORS:    !cfg.DisableCORS,
		AllowedOrigin: cfg.AllowedOrigin,
		EnablePprof:   true,
	}

	watcher, live, err := hotreload.New(cfg.Folder, deps, rmCfg, logger)
	if err != nil {
		return fmt.Errorf("building initial routing table: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Errorw("hot reload watcher stopped", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			live.Current().ServeHTTP(w, r)
		}),
	}

	go func() {
		logger.Infow("mockhive listening", "addr", srv.Addr, "folder", cfg.Folder)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("server error", "err", err)
		}
	}()

	shutdown.Wait(srv, func() shutdown.Resources {
		return shutdown.Resources{Store: store, TempStores: live.TempUploadDirs()}
	}, logger)
	return nil
}

func overlayServerFile(cfg config.ServerConfig, loader *tomlconfig.Loader) config.ServerConfig {
	s := loader.Server
	if s.Port != nil {
		cfg.Port = uint16(*s.Port)
	}
	if s.Folder != nil {
		cfg.Folder = *s.Folder
	}
	if s.EnableCORS != nil {
		cfg.DisableCORS = !*s.EnableCORS
	}
	if s.AllowedOrigin != nil {
		cfg.AllowedOrigin = *s.AllowedOrigin
	}
	return cfg
}
