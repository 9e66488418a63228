package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fixkaro/config"
	jobRepo "fixkaro/database/repository/job"
	"fixkaro/models"
	"fixkaro/services/notification"

	"github.com/hibiken/asynq"
)

const TypeJobReminder = "job:reminder"

// reminderLeadTime is how long before the scheduled slot both parties are pinged.
const reminderLeadTime = 30 * time.Minute

// ReminderPayload carries one scheduled-job reminder through the queue.
type ReminderPayload struct {
	JobID         string    `json:"job_id"`
	CustomerID    string    `json:"customer_id"`
	WorkerID      string    `json:"worker_id,omitempty"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// ScheduleJobReminder enqueues a reminder for a job with a scheduled slot,
// firing shortly before the slot. Jobs without a slot are ignored.
func ScheduleJobReminder(j *models.Job) error {
	if j.ScheduledTime.IsZero() {
		return nil
	}
	fireAt := j.ScheduledTime.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		JobID:         j.ID,
		CustomerID:    j.CustomerID,
		WorkerID:      j.WorkerID,
		ScheduledTime: j.ScheduledTime,
	})
	if err != nil {
		return fmt.Errorf("failed to encode reminder payload: %w", err)
	}

	client := asynq.NewClient(redisOpts())
	defer client.Close()

	task := asynq.NewTask(TypeJobReminder, payload)
	if _, err := client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue job reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(jobs jobRepo.JobRepository, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeJobReminder, handleReminderTask(jobs, notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(jobs jobRepo.JobRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// The payload was captured at creation, before any worker was
		// assigned; re-fetch the row for the current assignment and state.
		j, err := jobs.GetByID(p.JobID)
		if err != nil {
			return fmt.Errorf("failed to load job %s for reminder: %w", p.JobID, err)
		}
		if j == nil || j.Terminal() || j.Status == models.JobDisputed {
			return nil
		}

		when := p.ScheduledTime.Format("Mon 3:04 PM")
		msg := fmt.Sprintf("Reminder: your job is scheduled for %s.", when)

		if err := notifSvc.Notify(ctx, j.CustomerID, "Upcoming job", msg, models.NotifInfo); err != nil {
			log.Printf("[ReminderHandler] failed to notify customer: %v", err)
		}
		if j.WorkerID != "" {
			if err := notifSvc.Notify(ctx, j.WorkerID, "Upcoming job", msg, models.NotifInfo); err != nil {
				log.Printf("[ReminderHandler] failed to notify worker: %v", err)
			}
		}
		return nil
	}
}
