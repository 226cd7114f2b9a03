package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"salonbook/config"
	"salonbook/services/booking"
)

const TypeExpireSweep = "appointment:expire_sweep"

// InitExpiryWorker runs the async worker and its periodic scheduler in
// the background. The sweep drives stale pending appointments through
// the ordinary pending -> cancelled transition entrypoint; the engine
// itself never runs on a timer.
func InitExpiryWorker(svc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1, // sweeps must not overlap
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpireSweep, handleExpireSweep(svc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	interval := config.AppConfig.ExpirySweepMinutes
	if interval <= 0 {
		interval = 5
	}
	if _, err := scheduler.Register(
		"@every "+(time.Duration(interval)*time.Minute).String(),
		asynq.NewTask(TypeExpireSweep, nil),
	); err != nil {
		log.Fatalf("[ExpiryWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		log.Println("[ExpiryWorker] starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[ExpiryWorker] scheduler failed: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpireSweep(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		expired, err := svc.ExpireStalePending(ctx)
		if err != nil {
			log.Printf("[ExpirySweep] sweep failed: %v", err)
			return err
		}
		if expired > 0 {
			log.Printf("[ExpirySweep] cancelled %d stale pending appointments", expired)
		}
		return nil
	}
}
