package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hvac_crm_backend/internal/events"
	pipelinerepo "hvac_crm_backend/internal/pipeline/repository"
	pipelinesvc "hvac_crm_backend/internal/pipeline/service"
	"hvac_crm_backend/internal/scheduler"
	"hvac_crm_backend/platform/config"
	"hvac_crm_backend/platform/db"
	"hvac_crm_backend/platform/logger"
)

// The scheduler binary runs the asynq worker that delivers follow-up
// reminders. It shares the API's database and Redis configuration.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := scheduler.PingRedis(pingCtx, cfg); err != nil {
		cancel()
		log.Error("redis unavailable", "error", err)
		panic("redis unavailable: " + err.Error())
	}
	cancel()
	log.Info("redis connection verified")

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	leads := pipelinesvc.New(pipelinerepo.New(pool), bus, log)

	worker, err := scheduler.NewWorker(cfg, leads, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}
