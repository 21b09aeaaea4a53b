// Command errkit-demo runs a small API whose failures all flow through the
// exception handler, for trying the error responses by hand.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/errkit/config"
	"github.com/kbukum/errkit/errors"
	"github.com/kbukum/errkit/exception"
	"github.com/kbukum/errkit/i18n"
	"github.com/kbukum/errkit/logger"
	"github.com/kbukum/errkit/reporting"
	"github.com/kbukum/errkit/server"
	"github.com/kbukum/errkit/server/middleware"
	"github.com/kbukum/errkit/validation"
	"github.com/kbukum/errkit/version"
)

const serviceName = "errkit-demo"

type signupRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	NationalCode string `json:"national_code" validate:"omitempty,national_code"`
	City         string `json:"city" validate:"required,max=64"`
}

var users = map[int]gin.H{
	1: {"id": 1, "email": "sara@example.com"},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.ServiceConfig
	if err := config.LoadConfig(serviceName, &cfg, config.WithDefaults(config.ServiceDefaults())); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting service", map[string]interface{}{
		"name":        cfg.Name,
		"version":     version.Short(),
		"environment": cfg.Environment,
		"localized":   cfg.Exceptions.FarsiException,
	})

	// Spans are only recorded for the otel reporter; nothing exports them here.
	if cfg.Exceptions.ExceptionReporting == reporting.NameOTel {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
		otel.SetTracerProvider(tp)
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	catalog, err := i18n.New(i18n.WithAttrs(i18n.LocaleFarsi, map[string]string{
		"email":         "ایمیل",
		"phone":         "شماره تلفن",
		"national_code": "کد ملی",
		"city":          "شهر",
		"page":          "صفحه",
	}))
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	handler, err := exception.New(cfg.Exceptions,
		exception.WithLogger(log),
		exception.WithDebug(cfg.Debug),
		exception.WithCatalog(catalog),
		exception.WithRegistry(reporting.NewRegistry(log)),
	)
	if err != nil {
		return fmt.Errorf("build exception handler: %w", err)
	}

	srv, err := server.New(cfg.Server, handler, log)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	srv.ApplyMiddleware()
	srv.RegisterHealth(cfg.Name)
	registerRoutes(srv.GinEngine())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Info("Received shutdown signal")

	return srv.Stop(context.Background())
}

func registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/signup", func(c *gin.Context) {
		var req signupRequest
		if err := server.BindJSON(c, &req); err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondCreated(c, gin.H{"email": req.Email, "city": req.City})
	})

	api.GET("/users", func(c *gin.Context) {
		if err := server.BindQuery(c, validation.DefaultQueryOptions(), "page"); err != nil {
			server.RespondWithError(c, err)
			return
		}
		list := make([]gin.H, 0, len(users))
		for _, u := range users {
			list = append(list, u)
		}
		server.RespondOK(c, list)
	})

	api.GET("/users/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			server.RespondWithError(c, errors.ValidationFields(
				errors.Field(errors.ErrCodeInvalid, "A valid integer is required.", "id"),
			))
			return
		}
		u, ok := users[id]
		if !ok {
			server.RespondWithError(c, errors.NotFound("user"))
			return
		}
		server.RespondOK(c, u)
	})

	api.GET("/me", func(c *gin.Context) {
		userID := c.GetString(middleware.KeyUserID)
		if userID == "" {
			server.RespondWithError(c, errors.NotAuthenticated())
			return
		}
		server.RespondOK(c, gin.H{"user_id": userID})
	})

	api.GET("/raw/users/:id", middleware.SkipEnvelope(), func(c *gin.Context) {
		server.RespondWithError(c, errors.NotFound("user"))
	})

	api.GET("/crash", func(c *gin.Context) {
		panic("demo panic")
	})
}
