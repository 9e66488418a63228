package chat

import (
	"sync"
	"testing"

	"fixkaro/models"
	"fixkaro/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memChatRepo struct {
	mu       sync.Mutex
	messages []models.Message
}

func (r *memChatRepo) Append(msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memChatRepo) ListForJob(jobID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

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

type recordingPublisher struct {
	channels []string
}

func (p *recordingPublisher) Publish(channel string, kind realtime.EventKind, entity, entityID string) {
	p.channels = append(p.channels, channel)
}

func newChat() (*DefaultChatService, *recordingPublisher) {
	jobs := &stubJobRepo{jobs: map[string]*models.Job{
		"job-1": {
			ID:         "job-1",
			CustomerID: "cust-1",
			WorkerID:   "worker-1",
			Status:     models.JobInProgress,
		},
		"job-open": {
			ID:         "job-open",
			CustomerID: "cust-1",
			Status:     models.JobSearching,
		},
	}}
	hub := &recordingPublisher{}
	svc := &DefaultChatService{Repo: &memChatRepo{}, JobRepo: jobs, Hub: hub}
	return svc, hub
}

func TestSendAppendsForParticipants(t *testing.T) {
	svc, hub := newChat()

	_, err := svc.Send("job-1", "cust-1", "the gate code is 4412")
	require.NoError(t, err)
	_, err = svc.Send("job-1", "worker-1", "on my way")
	require.NoError(t, err)

	msgs, err := svc.List("job-1", "cust-1", false)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "the gate code is 4412", msgs[0].Text)
	assert.Equal(t, "worker-1", msgs[1].SenderID)

	assert.Equal(t, []string{"job:job-1", "job:job-1"}, hub.channels)
}

func TestSendRejectsOutsiders(t *testing.T) {
	svc, _ := newChat()

	_, err := svc.Send("job-1", "rando", "hello?")
	assert.ErrorIs(t, err, ErrNotParticipant)

	// An unassigned job has no worker side yet; a worker browsing the feed
	// is not a participant.
	_, err = svc.Send("job-open", "worker-1", "I can do this")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSendRejectsEmptyText(t *testing.T) {
	svc, _ := newChat()
	_, err := svc.Send("job-1", "cust-1", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMissingJob(t *testing.T) {
	svc, _ := newChat()
	_, err := svc.Send("gone", "cust-1", "hi")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestListAllowsAdminsOnly(t *testing.T) {
	svc, _ := newChat()
	_, err := svc.Send("job-1", "cust-1", "hello")
	require.NoError(t, err)

	_, err = svc.List("job-1", "rando", false)
	assert.ErrorIs(t, err, ErrNotParticipant)

	msgs, err := svc.List("job-1", "admin-1", true)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
