package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/errkit/errors"
	"github.com/kbukum/errkit/exception"
	"github.com/kbukum/errkit/logger"
	"github.com/kbukum/errkit/render"
	"github.com/kbukum/errkit/server/middleware"
	"github.com/kbukum/errkit/version"
)

// Server is an HTTP server backed by Gin whose error responses are produced
// by an exception.Handler. Additional http.Handler mounts share the port.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	config     Config
	handler    *exception.Handler
	renderers  *render.Registry
	log        *logger.Logger

	// done is canceled by Stop to end middleware background work.
	done   context.Context
	cancel context.CancelFunc
}

// New creates a new Server. Unknown routes and methods are reported through
// handler as not-found and method-not-allowed errors; a nil handler uses the
// default exception settings. Call ApplyMiddleware before registering routes.
func New(cfg Config, handler *exception.Handler, log *logger.Logger) (*Server, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if handler == nil {
		var err error
		handler, err = exception.New(exception.DefaultSettings(),
			exception.WithLogger(log), exception.WithDebug(cfg.Debug))
		if err != nil {
			return nil, fmt.Errorf("server: exception handler: %w", err)
		}
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, errors.NotFound(""))
	})
	engine.NoMethod(func(c *gin.Context) {
		RespondWithError(c, errors.MethodNotAllowed(c.Request.Method))
	})

	mux := http.NewServeMux()

	// Mount Gin as the fallback handler on the root mux.
	mux.Handle("/", engine)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(mux, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	done, cancel := context.WithCancel(context.Background())
	return &Server{
		done:       done,
		cancel:     cancel,
		httpServer: httpServer,
		engine:     engine,
		mux:        mux,
		config:     cfg,
		handler:    handler,
		renderers:  render.NewRegistry(),
		log:        log.WithComponent("server"),
	}, nil
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the http.Handler serving all mounts.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// ApplyMiddleware installs the standard stack on the Gin engine: tracing,
// request ID, request logging, exception rendering, panic recovery and, when
// configured, rate limiting and bearer authentication.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(
		middleware.Tracing(),
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
		middleware.Exceptions(s.handler, s.renderers, s.log),
		middleware.Recovery(s.log),
	)
	if s.config.RequestsPerMinute > 0 {
		s.engine.Use(middleware.RateLimit(s.done, middleware.RateLimitConfig{
			RequestsPerMinute: s.config.RequestsPerMinute,
		}))
	}
	if s.config.JWTSecret != "" {
		s.engine.Use(middleware.Auth(middleware.AuthConfig{
			Secret:    []byte(s.config.JWTSecret),
			SkipPaths: s.config.AuthSkipPaths,
		}))
	}
}

// RegisterHealth registers GET /health reporting the service name.
func (s *Server) RegisterHealth(serviceName string) {
	s.engine.GET("/health", func(c *gin.Context) {
		RespondOK(c, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"version":   version.Short(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
