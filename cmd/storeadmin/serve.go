package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"storeAdmin/internal/modules/dashboard/infrastructure"
	transport "storeAdmin/internal/modules/dashboard/interface"
	"storeAdmin/internal/platform/broker"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server and the Kafka change consumers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				opts.cfg.Server.Port = port
			}
			return serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "override SERVER_PORT")
	return cmd
}

func serve(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := opts.cfg
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	a, err := buildApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := infrastructure.NewHandlerRegistry()
	topics := a.changeHandlers(registry)
	consumersCtx, cancelConsumers := context.WithCancel(context.Background())
	defer cancelConsumers()
	waitConsumers := broker.StartKafkaConsumers(consumersCtx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, topics)

	e := newEcho(cfg.Server.AllowedOrigins)
	transport.Register(e, a.routes())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", slog.String("port", cfg.Server.Port), slog.String("backend", cfg.REST.BaseURL))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return a.sweeper.Run(gctx, cfg.Views.SweepInterval())
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	cancelConsumers()
	waitConsumers()
	slog.Info("server stopped", slog.Int("openSockets", a.hub.Connected()))
	return err
}

func newEcho(allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(log.Writer())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("reqID", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			slog.LogAttrs(context.Background(), level, "http request", attrs...)
			return nil
		},
	}))
	cors := middleware.CORSConfig{AllowCredentials: true}
	if len(allowedOrigins) > 0 {
		cors.AllowOrigins = allowedOrigins
	}
	e.Use(middleware.CORSWithConfig(cors))
	e.Use(middleware.Recover())
	return e
}
