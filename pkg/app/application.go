package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"guestcal/internal/bookings/handler"
	"guestcal/pkg/config"
	"guestcal/pkg/contracts"
	"guestcal/pkg/middleware"
)

// Worker is a background task that runs until its context is cancelled.
type Worker func(ctx context.Context)

// Closer releases a resource during shutdown.
type Closer func() error

type Application struct {
	cfg            *config.Config
	server         *http.Server
	rateLimiter    *middleware.HolderRateLimiter
	healthHandler  http.Handler
	wsHTTPHandler  http.Handler
	appHTTPHandler http.Handler

	workers []Worker
	closers []Closer
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewApplication() *Application {
	return &Application{}
}

func (a *Application) SetApp(cfg *config.Config, handlers ...contracts.Handler) {
	a.cfg = cfg
	a.setHealthHandler()
	a.setAppHandler(handlers...)
}

// SetWS mounts a handler outside the app middleware chain. The timeout
// and rate-limit wrappers cannot hijack the connection, and a request
// deadline makes no sense for a long-lived subscription, so websocket
// routes get the same minimal chain as the health endpoints.
func (a *Application) SetWS(ws contracts.Handler) {
	wsRouter := httprouter.New()
	ws.RegisterRoutes(wsRouter)

	var h http.Handler = wsRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.wsHTTPHandler = h
	a.cfg.Log.Info("WebSocket endpoint configured with minimal middleware (Recovery + Logging only)")
}

// AddWorker registers a background task started by Run and stopped via
// context cancellation at shutdown.
func (a *Application) AddWorker(w Worker) {
	a.workers = append(a.workers, w)
}

// AddCloser registers a resource closed after the server has drained.
func (a *Application) AddCloser(c Closer) {
	a.closers = append(a.closers, c)
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	healthHandler := handler.NewHealthHandler(a.cfg.Client.Mongo, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.healthHandler = h
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(handlers ...contracts.Handler) {
	appRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	a.rateLimiter = middleware.NewHolderRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.DefaultHolderExtractor,
		a.cfg.Log,
	)

	var h http.Handler = appRouter
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.HolderRateLimit(a.rateLimiter)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.appHTTPHandler = h
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	if a.wsHTTPHandler != nil {
		mux.Handle("/ws", a.wsHTTPHandler)
	}
	mux.Handle("/", a.appHTTPHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	a.setAppServer()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	for _, w := range a.workers {
		a.wg.Add(1)
		go func(w Worker) {
			defer a.wg.Done()
			w(ctx)
		}(w)
	}

	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.cfg.Log.Info("Stopping background workers...")
	a.cancel()
	a.rateLimiter.Stop()
	a.wg.Wait()
	a.cfg.Log.Info("Background workers stopped")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	for _, c := range a.closers {
		if err := c(); err != nil {
			a.cfg.Log.Warn("Resource close failed during shutdown", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
