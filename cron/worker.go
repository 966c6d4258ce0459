package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"harmony/config"
	"harmony/models"
	"harmony/services/session"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "session:reminder"

// ReminderPayload is the asynq task body for a session reminder.
type ReminderPayload struct {
	SessionID string `json:"sessionId"`
}

// ReminderScheduler enqueues reminder tasks to fire before a session starts.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler builds the scheduler from app config.
func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	return &ReminderScheduler{client: client, lead: lead}
}

// ScheduleSessionReminder enqueues a reminder to fire lead time before the
// session starts. Sessions starting too soon for the lead window get no
// reminder; that is not an error.
func (rs *ReminderScheduler) ScheduleSessionReminder(ctx context.Context, s *models.Session) error {
	start, err := s.StartTime()
	if err != nil {
		return fmt.Errorf("computing reminder time: %w", err)
	}
	fireAt := start.Add(-rs.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{SessionID: s.ID})
	if err != nil {
		return fmt.Errorf("encoding reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeSessionReminder, payload)
	if _, err := rs.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("enqueueing session reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(sessionSvc session.SessionService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionReminder, handleReminderTask(sessionSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(sessionSvc session.SessionService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		s, err := sessionSvc.Get(ctx, p.SessionID)
		if err != nil {
			log.Printf("[ReminderHandler] Could not load session %s: %v", p.SessionID, err)
			return err
		}
		// A session cancelled after the reminder was enqueued gets none.
		if s.Status != models.SessionScheduled {
			log.Printf("[ReminderHandler] Session %s is %s, skipping reminder", s.ID, s.Status)
			return nil
		}

		report, err := sessionSvc.ResendNotifications(ctx, s.ID, models.DefaultChannels)
		if err != nil {
			log.Printf("[ReminderHandler] Failed to dispatch reminder for %s: %v", s.ID, err)
			return err
		}
		log.Printf("[ReminderHandler] Reminder dispatched for session %s (%d parties)", s.ID, len(report))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
