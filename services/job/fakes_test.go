package job

import (
	"context"
	"sort"
	"sync"

	"fixkaro/models"

	"go.mongodb.org/mongo-driver/bson"
)

// memJobRepo is an in-memory JobRepository honoring the same conditional
// write contract as the Mongo implementation: Accept and Transition mutate
// only while their guard matches and return nil otherwise.
type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *memJobRepo) Create(j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *memJobRepo) GetByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) Accept(jobID, workerID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok || j.Status != models.JobSearching || j.WorkerID != "" {
		return nil, nil
	}
	j.Status = models.JobAccepted
	j.WorkerID = workerID
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) Transition(jobID string, from []models.JobStatus, set bson.M) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, nil
	}
	matched := false
	for _, s := range from {
		if j.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "status":
			j.Status = v.(models.JobStatus)
		case "amount":
			j.Amount = v.(float64)
		case "dispute_reason":
			j.DisputeReason = v.(string)
		}
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) ListAvailable(categoryIDs []string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if j.Status != models.JobSearching || j.WorkerID != "" {
			continue
		}
		if len(categoryIDs) > 0 && !contains(categoryIDs, j.CategoryID) {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *memJobRepo) ActiveForCustomer(customerID string) ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool {
		return j.CustomerID == customerID && !j.Terminal()
	}), nil
}

func (r *memJobRepo) HistoryForCustomer(customerID string) ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool {
		return j.CustomerID == customerID && j.Terminal()
	}), nil
}

func (r *memJobRepo) ActiveForWorker(workerID string) ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool {
		return j.WorkerID == workerID && !j.Terminal()
	}), nil
}

func (r *memJobRepo) AllActive() ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool {
		return j.WorkerID != "" && !j.Terminal()
	}), nil
}

func (r *memJobRepo) CompletedAmounts() ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []float64
	for _, j := range r.jobs {
		if j.Status == models.JobCompleted {
			out = append(out, j.Amount)
		}
	}
	return out, nil
}

func (r *memJobRepo) filter(keep func(*models.Job) bool) []models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if keep(j) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// memProfileRepo is an in-memory ProfileRepository covering what the job
// service needs.
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

func (r *memProfileRepo) GetAll() ([]models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Profile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

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

func (r *memProfileRepo) Update(p *models.Profile) error {
	return r.Create(p)
}

func (r *memProfileRepo) UpdateFields(id string, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil
	}
	for k, v := range set {
		switch k {
		case "worker_status":
			p.WorkerStatus = v.(models.WorkerStatus)
		case "online":
			p.Online = v.(bool)
		case "rating":
			p.Rating = v.(float64)
		case "review_count":
			p.ReviewCount = v.(int)
		}
	}
	return nil
}

func (r *memProfileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *memProfileRepo) PendingWorkers() ([]models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Profile
	for _, p := range r.profiles {
		if p.WorkerStatus == models.WorkerPendingReview {
			out = append(out, *p)
		}
	}
	return out, nil
}

// memCatalogRepo is an in-memory CatalogRepository.
type memCatalogRepo struct {
	mu         sync.Mutex
	categories map[string]*models.ServiceCategory
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{categories: make(map[string]*models.ServiceCategory)}
}

func (r *memCatalogRepo) GetByID(id string) (*models.ServiceCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCatalogRepo) GetAll() ([]models.ServiceCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceCategory
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCatalogRepo) Search(keyword string) ([]models.ServiceCategory, error) {
	return r.GetAll()
}

func (r *memCatalogRepo) Create(c *models.ServiceCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCatalogRepo) Update(c *models.ServiceCategory) error {
	return r.Create(c)
}

func (r *memCatalogRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

// memLedgerRepo is an in-memory LedgerRepository.
type memLedgerRepo struct {
	mu   sync.Mutex
	txns []*models.Transaction
}

func newMemLedgerRepo() *memLedgerRepo {
	return &memLedgerRepo{}
}

func (r *memLedgerRepo) Append(txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.txns = append(r.txns, &cp)
	return nil
}

func (r *memLedgerRepo) GetByID(id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) ListForWorker(workerID string) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, t := range r.txns {
		if t.WorkerID == workerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListWithdrawals() ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, t := range r.txns {
		if t.Type == models.TxnDebit {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) Advance(id string, to models.TransactionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.ID == id {
			if t.Status != models.TxnPending {
				return false, nil
			}
			t.Status = to
			return true, nil
		}
	}
	return false, nil
}

// recordingNotifier counts alerts without delivering anything.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string // userID
	calls int
}

func (n *recordingNotifier) Notify(ctx context.Context, userID, title, message string, typ models.NotificationType) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, userID)
	n.calls++
	return nil
}

func (n *recordingNotifier) ListForUser(userID string) ([]models.NotificationItem, error) {
	return nil, nil
}

func (n *recordingNotifier) MarkRead(id, userID string) error { return nil }
