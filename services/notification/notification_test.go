package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"fixkaro/models"
	"fixkaro/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type memNotificationRepo struct {
	mu    sync.Mutex
	items []models.NotificationItem
}

func (r *memNotificationRepo) Append(item *models.NotificationItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *item)
	return nil
}

func (r *memNotificationRepo) ListForUser(userID string) ([]models.NotificationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.NotificationItem
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			r.items[i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %s not found", id)
}

type stubProfileRepo struct{}

func (stubProfileRepo) GetByID(string) (*models.Profile, error)    { return nil, nil }
func (stubProfileRepo) GetByEmail(string) (*models.Profile, error) { return nil, nil }
func (stubProfileRepo) GetAll() ([]models.Profile, error)          { return nil, nil }
func (stubProfileRepo) Create(*models.Profile) error               { return nil }
func (stubProfileRepo) Ensure(*models.Profile) error               { return nil }
func (stubProfileRepo) Update(*models.Profile) error               { return nil }
func (stubProfileRepo) UpdateFields(string, bson.M) error          { return nil }
func (stubProfileRepo) Delete(string) error                        { return nil }
func (stubProfileRepo) PendingWorkers() ([]models.Profile, error)  { return nil, nil }

type recordingPublisher struct {
	channels []string
	entities []string
}

func (p *recordingPublisher) Publish(channel string, kind realtime.EventKind, entity, entityID string) {
	p.channels = append(p.channels, channel)
	p.entities = append(p.entities, entity)
}

func newNotification(t *testing.T) (*DefaultNotificationService, *memNotificationRepo, *recordingPublisher) {
	t.Helper()
	repo := &memNotificationRepo{}
	hub := &recordingPublisher{}
	svc, err := NewDefaultNotificationService(repo, stubProfileRepo{}, hub, zap.NewNop())
	require.NoError(t, err)
	return svc, repo, hub
}

func TestNotifyStoresAndAnnounces(t *testing.T) {
	svc, _, hub := newNotification(t)

	err := svc.Notify(context.Background(), "user-1", "Job accepted", "Ravi is on the way", models.NotifInfo)
	require.NoError(t, err)

	items, err := svc.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Job accepted", items[0].Title)
	assert.Equal(t, models.NotifInfo, items[0].Type)
	assert.False(t, items[0].IsRead)

	assert.Equal(t, []string{"user:user-1"}, hub.channels)
	assert.Equal(t, []string{"notification"}, hub.entities)
}

func TestListForUserIsScopedAndNewestFirst(t *testing.T) {
	svc, _, _ := newNotification(t)
	ctx := context.Background()
	require.NoError(t, svc.Notify(ctx, "user-1", "first", "", models.NotifInfo))
	require.NoError(t, svc.Notify(ctx, "user-2", "other", "", models.NotifInfo))
	require.NoError(t, svc.Notify(ctx, "user-1", "second", "", models.NotifSuccess))

	items, err := svc.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, "first", items[1].Title)
}

func TestMarkRead(t *testing.T) {
	svc, repo, _ := newNotification(t)
	require.NoError(t, svc.Notify(context.Background(), "user-1", "hello", "", models.NotifInfo))

	items, _ := repo.ListForUser("user-1")
	require.Len(t, items, 1)
	require.NoError(t, svc.MarkRead(items[0].ID, "user-1"))

	items, _ = repo.ListForUser("user-1")
	assert.True(t, items[0].IsRead)
}

func TestMarkReadRejectsOtherUsers(t *testing.T) {
	svc, repo, _ := newNotification(t)
	require.NoError(t, svc.Notify(context.Background(), "user-1", "hello", "", models.NotifInfo))

	items, _ := repo.ListForUser("user-1")
	require.Len(t, items, 1)
	assert.Error(t, svc.MarkRead(items[0].ID, "user-2"))

	items, _ = repo.ListForUser("user-1")
	assert.False(t, items[0].IsRead)
}

func TestConstructorRejectsNilRepos(t *testing.T) {
	_, err := NewDefaultNotificationService(nil, stubProfileRepo{}, nil, zap.NewNop())
	assert.Error(t, err)
}
