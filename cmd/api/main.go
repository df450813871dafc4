package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	"github.com/bossofclean/cleaner-scheduler/internal/config"
	dbpkg "github.com/bossofclean/cleaner-scheduler/internal/db"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/infra/repository"
	"github.com/bossofclean/cleaner-scheduler/internal/jobs"
	"github.com/bossofclean/cleaner-scheduler/internal/logger"
	"github.com/bossofclean/cleaner-scheduler/internal/middleware"
	"github.com/bossofclean/cleaner-scheduler/internal/routes"
	"github.com/bossofclean/cleaner-scheduler/internal/timezone"
	"github.com/bossofclean/cleaner-scheduler/internal/validators"
)

const shutdownTimeout = 15 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "cleaner-scheduler",
		Short: "Cleaner availability and booking API",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			return dbpkg.Migrate(db, log)
		},
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	return cfg, log, nil
}

func runServer() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}

	loc := timezone.Location(cfg.Timezone)
	dispatcher := audit.NewDispatcher(audit.NewStore(db), log)

	var publisher events.Publisher = events.NopPublisher{}
	var redisPub *events.RedisPublisher
	if cfg.RedisURL != "" {
		redisPub, err = events.NewRedisPublisher(ctx, cfg.RedisURL, log)
		if err != nil {
			return err
		}
		publisher = redisPub
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	services := routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Log:       log,
		Location:  loc,
		Bookings:  repository.NewBookingGormRepository(db),
		Schedule:  repository.NewScheduleGormRepository(db),
		AuditLogs: audit.NewStore(db),
		Audit:     dispatcher,
		Events:    publisher,
	})

	scheduler, err := jobs.NewScheduler(loc, cfg.PurgeCron, services.BlockedDates, log)
	if err != nil {
		return err
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
	if redisPub != nil {
		if err := redisPub.Close(); err != nil {
			log.Warn("redis close", zap.Error(err))
		}
	}

	return nil
}
