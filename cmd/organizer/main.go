package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"personal-organizer/internal/auth"
	"personal-organizer/internal/config"
	"personal-organizer/internal/repository"
	"personal-organizer/internal/server"
	"personal-organizer/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("db", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	userSvc := service.NewUserService(userRepo)
	taskSvc := service.NewTaskService(taskRepo)
	travelSvc := service.NewTravelService(diaryRepo, activityRepo)
	sessions := auth.NewSessions(sessionRepo, cfg.SessionTTL)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(sweepSpec(cfg.SessionSweep), func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		purged, err := sessions.PurgeExpired(jobCtx)
		if err != nil {
			slog.Error("session sweep", "error", err)
			return
		}
		if purged > 0 {
			slog.Info("purged expired sessions", "count", purged)
		}
	}); err != nil {
		slog.Error("schedule session sweep", "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := server.New(userSvc, taskSvc, travelSvc, sessions)
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}

	go func() {
		slog.Info("organizer started", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("shutdown complete")
}

// sweepSpec renders the sweep interval as a cron @every schedule.
func sweepSpec(interval time.Duration) string {
	return "@every " + interval.String()
}
