// Package server serves the writing session over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"writeassist/internal/session"
)

type Options struct {
	Addr           string
	AllowedOrigins []string
	Version        string
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// NewRouter builds the gin engine with CORS, health checks and the API.
func NewRouter(h *Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	if len(opts.AllowedOrigins) == 0 || contains(opts.AllowedOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = opts.AllowedOrigins
	}
	r.Use(cors.New(cc))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Service:   "writeassist",
			Version:   opts.Version,
		})
	}
	r.GET("/health", health)
	r.GET("/healthz", health)

	h.Register(r.Group("/api"))
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully and waits
// for background jobs.
func Run(ctx context.Context, s *session.Session, opts Options) error {
	h := NewHandler(ctx, s)
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewRouter(h, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] listening on %s", opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Printf("[info] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	h.Wait()
	return err
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
