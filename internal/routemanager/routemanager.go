// Package routemanager assembles a routebuilder.Result into a live
// gin.Engine (C10): protected routes alone are wrapped by the auth
// middleware, every route gets the delay middleware ahead of its
// handler, and a CORS layer sits in front of all of it when the server
// config enables it. Modeled on the teacher's
// internal/app/router.go SetupRouter — gin.New() plus ordered r.Use()
// calls — except auth wraps per-route here rather than globally, since
// §4.6 requires only `$`-protected routes to be gated.
package routemanager

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rawen554/mockhive/internal/authmw"
	"github.com/rawen554/mockhive/internal/jwtauth"
	"github.com/rawen554/mockhive/internal/routebuilder"
	"github.com/rawen554/mockhive/internal/webui"
)

// Config controls the ambient middleware layered around every build's
// routes.
type Config struct {
	EnableCORS    bool
	AllowedOrigin string
	EnablePprof   bool
}

// Build assembles records into a ready-to-serve gin.Engine.
func Build(records []routebuilder.Record, jwtSvc *jwtauth.Service, logger *zap.SugaredLogger, cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if cfg.EnableCORS {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.AllowedOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	if cfg.EnablePprof {
		pprof.Register(r)
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/", webui.Index())

	for _, rec := range records {
		handlers := make([]gin.HandlerFunc, 0, 3)
		if rec.Protected {
			handlers = append(handlers, authmw.Middleware(jwtSvc, logger))
		}
		handlers = append(handlers, delayMiddleware(rec.DelayMS), rec.Handler)
		r.Handle(rec.Method, rec.Pattern, handlers...)
	}

	return r
}

// delayMiddleware suspends the request for delayMS before calling
// Next, honoring the per-route configured delay (§4.9) without a
// busy-wait.
func delayMiddleware(delayMS int) gin.HandlerFunc {
	if delayMS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	d := time.Duration(delayMS) * time.Millisecond
	return func(c *gin.Context) {
		time.Sleep(d)
		c.Next()
	}
}
