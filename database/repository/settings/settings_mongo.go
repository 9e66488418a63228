package settingsRepo

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

// SettingsRepository defines access to the singleton configuration row.
type SettingsRepository interface {
	// Get retrieves the settings row, creating it with defaults on first use.
	Get() (*models.SystemSettings, error)
	// Update replaces the settings row in place.
	Update(settings *models.SystemSettings) error
}

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo creates a new instance of SettingsRepository using MongoDB.
func NewMongoSettingsRepo() SettingsRepository {
	return &MongoSettingsRepo{coll: database.Collection("system_settings")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Get fetches the singleton row. Every caller targets the fixed SettingsID,
// and first use inserts the defaults with an on-conflict-do-nothing upsert,
// so concurrent readers can never create duplicate rows.
func (r *MongoSettingsRepo) Get() (*models.SystemSettings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	defaults := models.DefaultSettings()
	defaults.UpdatedAt = time.Now()
	filter := bson.M{"id": models.SettingsID}
	update := bson.M{"$setOnInsert": defaults}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.SystemSettings
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings); err != nil {
		return nil, fmt.Errorf("failed to fetch system settings: %w", err)
	}
	return &settings, nil
}

func (r *MongoSettingsRepo) Update(settings *models.SystemSettings) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	settings.ID = models.SettingsID
	settings.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": models.SettingsID}, settings, opts); err != nil {
		return fmt.Errorf("failed to update system settings: %w", err)
	}
	return nil
}
