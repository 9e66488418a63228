package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fixkaro/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// stubJobRepo serves a fixed set of jobs; only lookup is exercised here.
type stubJobRepo struct {
	jobs map[string]*models.Job
}

func (r *stubJobRepo) Create(*models.Job) error { return nil }

func (r *stubJobRepo) GetByID(id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (r *stubJobRepo) Accept(string, string) (*models.Job, error) { return nil, nil }
func (r *stubJobRepo) Transition(string, []models.JobStatus, bson.M) (*models.Job, error) {
	return nil, nil
}
func (r *stubJobRepo) ListAvailable([]string) ([]models.Job, error)    { return nil, nil }
func (r *stubJobRepo) ActiveForCustomer(string) ([]models.Job, error)  { return nil, nil }
func (r *stubJobRepo) HistoryForCustomer(string) ([]models.Job, error) { return nil, nil }
func (r *stubJobRepo) ActiveForWorker(string) ([]models.Job, error)    { return nil, nil }
func (r *stubJobRepo) AllActive() ([]models.Job, error)                { return nil, nil }
func (r *stubJobRepo) CompletedAmounts() ([]float64, error)            { return nil, nil }

type recordingNotifier struct {
	recipients []string
}

func (n *recordingNotifier) Notify(_ context.Context, userID, title, message string, typ models.NotificationType) error {
	n.recipients = append(n.recipients, userID)
	return nil
}

func (n *recordingNotifier) ListForUser(string) ([]models.NotificationItem, error) { return nil, nil }
func (n *recordingNotifier) MarkRead(string, string) error                         { return nil }

func reminderTask(t *testing.T, jobID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(ReminderPayload{
		JobID:         jobID,
		CustomerID:    "cust-1",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return asynq.NewTask(TypeJobReminder, payload)
}

func TestReminderNotifiesAssignedWorker(t *testing.T) {
	// The task was enqueued at creation, before any worker existed; by the
	// time it fires the job row carries the assignment.
	jobs := &stubJobRepo{jobs: map[string]*models.Job{
		"job-1": {ID: "job-1", CustomerID: "cust-1", WorkerID: "worker-1", Status: models.JobAccepted},
	}}
	notifier := &recordingNotifier{}

	err := handleReminderTask(jobs, notifier)(context.Background(), reminderTask(t, "job-1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cust-1", "worker-1"}, notifier.recipients)
}

func TestReminderSkipsUnassignedWorkerHalf(t *testing.T) {
	jobs := &stubJobRepo{jobs: map[string]*models.Job{
		"job-1": {ID: "job-1", CustomerID: "cust-1", Status: models.JobSearching},
	}}
	notifier := &recordingNotifier{}

	err := handleReminderTask(jobs, notifier)(context.Background(), reminderTask(t, "job-1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cust-1"}, notifier.recipients)
}

func TestReminderSkipsSettledAndMissingJobs(t *testing.T) {
	jobs := &stubJobRepo{jobs: map[string]*models.Job{
		"job-done": {ID: "job-done", CustomerID: "cust-1", WorkerID: "worker-1", Status: models.JobCancelled},
	}}
	notifier := &recordingNotifier{}
	handler := handleReminderTask(jobs, notifier)

	require.NoError(t, handler(context.Background(), reminderTask(t, "job-done")))
	require.NoError(t, handler(context.Background(), reminderTask(t, "job-gone")))
	assert.Empty(t, notifier.recipients)
}
