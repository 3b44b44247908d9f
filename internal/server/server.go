// Package server exposes tidsplan over HTTP: a JSON API plus a
// server-sent event stream of task snapshots.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/gin-gonic/gin"
)

// UserHeader selects the owner of a request. Requests without it act as
// the configured user.
const UserHeader = "X-Tidsplan-User"

// StartOpts holds configuration for the HTTP server.
type StartOpts struct {
	App  *app.Context
	Port int
	Out  io.Writer
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.App == nil {
		return errors.New("server: app context is required")
	}
	if opts.Port <= 0 {
		opts.Port = opts.App.Config.HTTPPort
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts.App),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when ctx does instead of holding up Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			opts.App.Logger.Warn("server shutdown", "error", err)
		}
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "tidsplan listening on http://localhost:%d\n", opts.Port)
	}
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	<-shutdownDone
	return nil
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(c *app.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(c))
	h := &handlers{app: c}
	h.register(router)
	return router
}

func requestLogger(c *app.Context) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()
		c.Logger.Debug("http request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}
}
