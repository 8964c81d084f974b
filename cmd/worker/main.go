package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/das-hr/skillmatrix/internal/app"
	"github.com/das-hr/skillmatrix/internal/platform/db"
	"github.com/das-hr/skillmatrix/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	cleanup := jobs.NewCleanupJob(pool, logger)

	careerTask, err := jobs.NewCareerCleanupTask(cfg.CleanupRetention)
	if err != nil {
		logger.Error("build career cleanup task", slog.Any("error", err))
		os.Exit(1)
	}
	departmentTask, err := jobs.NewDepartmentCleanupTask(cfg.CleanupRetention)
	if err != nil {
		logger.Error("build department cleanup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCareerCleanup, Handler: cleanup.HandleCareerCleanup},
			{Type: jobs.TaskDepartmentCleanup, Handler: cleanup.HandleDepartmentCleanup},
			{Type: jobs.TaskNotifyUser, Handler: cleanup.HandleNotify},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: careerTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 3 * * *", Task: departmentTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker exited", slog.Any("error", err))
		os.Exit(1)
	}
}
