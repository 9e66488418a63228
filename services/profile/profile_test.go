package profile

import (
	"sync"
	"testing"

	"fixkaro/models"
	"fixkaro/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// memProfileRepo is an in-memory ProfileRepository.
type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *memProfileRepo) GetByID(id string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) GetByEmail(email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) GetAll() ([]models.Profile, error) { return nil, nil }

func (r *memProfileRepo) Create(p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *memProfileRepo) Ensure(p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; ok {
		return nil
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *memProfileRepo) Update(p *models.Profile) error { return r.Create(p) }

func (r *memProfileRepo) UpdateFields(id string, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil
	}
	for k, v := range set {
		switch k {
		case "name":
			p.Name = v.(string)
		case "online":
			p.Online = v.(bool)
		case "worker_status":
			p.WorkerStatus = v.(models.WorkerStatus)
		case "verification_docs":
			p.VerificationDocs = v.([]string)
		case "rating":
			p.Rating = v.(float64)
		case "review_count":
			p.ReviewCount = v.(int)
		}
	}
	return nil
}

func (r *memProfileRepo) Delete(id string) error { return nil }

func (r *memProfileRepo) PendingWorkers() ([]models.Profile, error) { return nil, nil }

// memReviewRepo is an in-memory ReviewRepository.
type memReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (r *memReviewRepo) Append(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *memReviewRepo) ListForReviewee(revieweeID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.RevieweeID == revieweeID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// memSettingsRepo serves a single in-memory settings row.
type memSettingsRepo struct {
	mu       sync.Mutex
	settings *models.SystemSettings
}

func (r *memSettingsRepo) Get() (*models.SystemSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		r.settings = models.DefaultSettings()
	}
	cp := *r.settings
	return &cp, nil
}

func (r *memSettingsRepo) Update(s *models.SystemSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.ID = models.SettingsID
	r.settings = &cp
	return nil
}

func newProfileService(t *testing.T) (*DefaultProfileService, *memProfileRepo, *memSettingsRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := newMemProfileRepo()
	settings := &memSettingsRepo{}
	svc := &DefaultProfileService{
		Repo:         repo,
		ReviewRepo:   &memReviewRepo{},
		SettingsRepo: settings,
		Logger:       zap.NewNop(),
	}
	return svc, repo, settings
}

func registerInput(email string, role models.UserRole) RegisterInput {
	return RegisterInput{
		Email:    email,
		Password: "correct-horse",
		Name:     "Asha",
		Phone:    "9900000000",
		Role:     role,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newProfileService(t)

	resp, err := svc.Register(registerInput("asha@example.com", models.RoleCustomer))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleCustomer, resp.Profile.Role)
	assert.Empty(t, resp.Profile.WorkerStatus)

	login, err := svc.Login("Asha@Example.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ID, login.Profile.ID)
}

func TestRegisterWorkerStartsUnverified(t *testing.T) {
	svc, _, _ := newProfileService(t)

	resp, err := svc.Register(registerInput("worker@example.com", models.RoleWorker))
	require.NoError(t, err)
	assert.Equal(t, models.WorkerUnverified, resp.Profile.WorkerStatus)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newProfileService(t)

	_, err := svc.Register(registerInput("boss@example.com", models.RoleAdmin))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterHonorsRegistrationToggle(t *testing.T) {
	svc, _, settings := newProfileService(t)
	s, _ := settings.Get()
	s.AllowRegistration = false
	require.NoError(t, settings.Update(s))

	_, err := svc.Register(registerInput("late@example.com", models.RoleCustomer))
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newProfileService(t)

	_, err := svc.Register(registerInput("dup@example.com", models.RoleCustomer))
	require.NoError(t, err)

	_, err = svc.Register(registerInput("dup@example.com", models.RoleCustomer))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsWrongPasswordAndUnknownEmail(t *testing.T) {
	svc, _, _ := newProfileService(t)
	_, err := svc.Register(registerInput("asha@example.com", models.RoleCustomer))
	require.NoError(t, err)

	_, err = svc.Login("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRefusesSuspendedAccount(t *testing.T) {
	svc, repo, _ := newProfileService(t)
	resp, err := svc.Register(registerInput("worker@example.com", models.RoleWorker))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateFields(resp.Profile.ID,
		bson.M{"worker_status": models.WorkerSuspended}))

	_, err = svc.Login("worker@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrSuspended)
}

func TestSetOnlineIsWorkerOnly(t *testing.T) {
	svc, _, _ := newProfileService(t)
	worker, err := svc.Register(registerInput("w@example.com", models.RoleWorker))
	require.NoError(t, err)
	customer, err := svc.Register(registerInput("c@example.com", models.RoleCustomer))
	require.NoError(t, err)

	require.NoError(t, svc.SetOnline(worker.Profile.ID, true))

	err = svc.SetOnline(customer.Profile.ID, true)
	assert.ErrorIs(t, err, ErrNotWorker)
}

func TestSubmitVerificationQueuesForReview(t *testing.T) {
	svc, repo, _ := newProfileService(t)
	resp, err := svc.Register(registerInput("w@example.com", models.RoleWorker))
	require.NoError(t, err)

	require.NoError(t, svc.SubmitVerification(resp.Profile.ID, []string{"doc-1", "doc-2"}))

	p, err := repo.GetByID(resp.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkerPendingReview, p.WorkerStatus)
	assert.Equal(t, []string{"doc-1", "doc-2"}, p.VerificationDocs)
}

func TestAddReviewRefreshesDerivedRating(t *testing.T) {
	svc, repo, _ := newProfileService(t)
	worker, err := svc.Register(registerInput("w@example.com", models.RoleWorker))
	require.NoError(t, err)

	require.NoError(t, svc.AddReview("job-1", "cust-1", worker.Profile.ID, 5, "great"))
	require.NoError(t, svc.AddReview("job-2", "cust-2", worker.Profile.ID, 4, ""))

	p, err := repo.GetByID(worker.Profile.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, p.Rating, 0.001)
	assert.Equal(t, 2, p.ReviewCount)

	err = svc.AddReview("job-3", "cust-3", worker.Profile.ID, 6, "")
	assert.ErrorIs(t, err, ErrValidation)
}
