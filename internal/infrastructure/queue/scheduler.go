package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"stayhub-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerSearchReindexJob(); err != nil {
		return err
	}
	if err := s.registerRatingSweepJob(); err != nil {
		return err
	}
	if err := s.registerMediaCleanupJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB 1: Search Reindex (Daily at 2 AM)
// ================================================
// Write paths keep the index current; the nightly rebuild repairs any
// drift from failed best-effort syncs.
func (s *Scheduler) registerSearchReindexJob() error {
	payload, err := json.Marshal(SearchReindexPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeSearchReindex, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *", // Daily at 2 AM
		task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SearchReindex job", err)
		return err
	}

	logger.Info("✓ Registered SearchReindex: daily at 2 AM", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 2: Rating Sweep (Every 6 hours)
// ================================================
// Review writes refresh aggregates synchronously; the sweep repairs
// listings whose refresh was lost to a crash or a failed best-effort
// call.
func (s *Scheduler) registerRatingSweepJob() error {
	payload, err := json.Marshal(RatingSweepPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeRatingSweep, payload)

	_, err = s.scheduler.Register(
		"0 */6 * * *", // Every 6 hours at minute 0
		task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(15*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RatingSweep job", err)
		return err
	}

	logger.Info("✓ Registered RatingSweep: every 6 hours", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 3: Orphan Media Cleanup (Daily at 3 AM)
// ================================================
// Staggered an hour after the reindex to avoid resource contention.
// Removes stored image sets whose owning listing was hard-deleted.
func (s *Scheduler) registerMediaCleanupJob() error {
	payload, err := json.Marshal(MediaCleanupPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeMediaCleanup, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(30*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register MediaCleanup job", err)
		return err
	}

	logger.Info("✓ Registered MediaCleanup: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
