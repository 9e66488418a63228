package jobRepo

import (
	"context"
	"fmt"
	"time"

	"fixkaro/database"
	"fixkaro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo creates a new instance of JobRepository using MongoDB.
func NewMongoJobRepo() JobRepository {
	repo := &MongoJobRepo{coll: database.Collection("jobs")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoJobRepo) Create(job *models.Job) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (r *MongoJobRepo) GetByID(id string) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var job models.Job
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch job with id %s: %w", id, err)
	}
	return &job, nil
}

// Accept claims a job for a worker with a single conditional update. The
// filter repeats the SEARCHING/unassigned guard so that of two concurrent
// claims exactly one matches; the loser sees no document and gets nil back.
func (r *MongoJobRepo) Accept(jobID, workerID string) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":        jobID,
		"status":    models.JobSearching,
		"worker_id": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{"$set": bson.M{
		"worker_id":  workerID,
		"status":     models.JobAccepted,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to accept job %s: %w", jobID, err)
	}
	return &job, nil
}

// Transition is the generic guarded status update used by every other
// lifecycle step. Like Accept it relies on the filter matching zero
// documents when the job has moved on.
func (r *MongoJobRepo) Transition(jobID string, from []models.JobStatus, set bson.M) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	filter := bson.M{"id": jobID, "status": bson.M{"$in": from}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition job %s: %w", jobID, err)
	}
	return &job, nil
}

func (r *MongoJobRepo) ListAvailable(categoryIDs []string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.JobSearching,
		"worker_id": bson.M{"$in": bson.A{nil, ""}},
	}
	if len(categoryIDs) > 0 {
		filter["category_id"] = bson.M{"$in": categoryIDs}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findJobs(ctx, filter, opts)
}

func (r *MongoJobRepo) ActiveForCustomer(customerID string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"customer_id": customerID,
		"status":      bson.M{"$nin": bson.A{models.JobCompleted, models.JobCancelled}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findJobs(ctx, filter, opts)
}

func (r *MongoJobRepo) HistoryForCustomer(customerID string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"customer_id": customerID,
		"status":      bson.M{"$in": bson.A{models.JobCompleted, models.JobCancelled}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findJobs(ctx, filter, opts)
}

func (r *MongoJobRepo) ActiveForWorker(workerID string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"worker_id": workerID,
		"status":    bson.M{"$nin": bson.A{models.JobCompleted, models.JobCancelled}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findJobs(ctx, filter, opts)
}

func (r *MongoJobRepo) AllActive() ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": bson.A{
		models.JobAccepted, models.JobArrived, models.JobInProgress, models.JobDisputed,
	}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findJobs(ctx, filter, opts)
}

func (r *MongoJobRepo) CompletedAmounts() ([]float64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"amount": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.JobCompleted}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve completed jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var amounts []float64
	for cursor.Next(ctx) {
		var doc struct {
			Amount float64 `bson:"amount"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode job amount: %w", err)
		}
		amounts = append(amounts, doc.Amount)
	}
	return amounts, nil
}

func (r *MongoJobRepo) findJobs(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Job, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	for cursor.Next(ctx) {
		var j models.Job
		if err := cursor.Decode(&j); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
