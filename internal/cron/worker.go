package cron

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/wipeandshine/scheduling-service/internal/config"
)

// Типы фоновых задач
const (
	TaskRenewalReminders = "subscription:renewal_reminders"
	TaskExpireLapsed     = "subscription:expire_lapsed"
)

// SubscriptionService интерфейс сервиса обслуживания подписок
type SubscriptionService interface {
	SendRenewalReminders(ctx context.Context) (int, error)
	ExpireLapsed(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker воркер периодических задач на asynq
// Scheduler кладет задачи в Redis по cron-расписанию, server их исполняет.
// Очередь в Redis позволяет запускать несколько экземпляров сервиса:
// задачу заберет ровно один воркер
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    Logger
}

// NewWorker создает воркер с зарегистрированными задачами
func NewWorker(redisCfg config.RedisConfig, jobsCfg config.JobsConfig, svc SubscriptionService, logger Logger) (*Worker, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	concurrency := jobsCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRenewalReminders, handleRenewalReminders(svc, logger))
	mux.HandleFunc(TaskExpireLapsed, handleExpireLapsed(svc, logger))

	if _, err := scheduler.Register(jobsCfg.RenewalReminderSchedule, asynq.NewTask(TaskRenewalReminders, nil)); err != nil {
		return nil, fmt.Errorf("cron: failed to register %s: %w", TaskRenewalReminders, err)
	}
	if _, err := scheduler.Register(jobsCfg.ExpireSchedule, asynq.NewTask(TaskExpireLapsed, nil)); err != nil {
		return nil, fmt.Errorf("cron: failed to register %s: %w", TaskExpireLapsed, err)
	}

	return &Worker{
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		logger:    logger,
	}, nil
}

// Start запускает воркер и планировщик (неблокирующий вызов)
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("cron: failed to start worker: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("cron: failed to start scheduler: %w", err)
	}

	w.logger.Info("Cron worker started")
	return nil
}

// Stop останавливает воркер и планировщик
func (w *Worker) Stop() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("Cron worker stopped")
}

func handleRenewalReminders(svc SubscriptionService, logger Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		processed, err := svc.SendRenewalReminders(ctx)
		if err != nil {
			logger.Error("Task %s failed: %v", TaskRenewalReminders, err)
			return err
		}
		logger.Info("Task %s done: %d subscriptions processed", TaskRenewalReminders, processed)
		return nil
	}
}

func handleExpireLapsed(svc SubscriptionService, logger Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		processed, err := svc.ExpireLapsed(ctx)
		if err != nil {
			logger.Error("Task %s failed: %v", TaskExpireLapsed, err)
			return err
		}
		logger.Info("Task %s done: %d subscriptions processed", TaskExpireLapsed, processed)
		return nil
	}
}
