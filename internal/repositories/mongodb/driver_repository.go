package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gopet/internal/models"
	"gopet/internal/utils"
)

const DriversCollection = "drivers"

type DriverRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewDriverRepository(db *mongo.Database, collection string) *DriverRepository {
	if collection == "" {
		collection = DriversCollection
	}
	return &DriverRepository{
		collection: db.Collection(collection),
		// Mongo stores milliseconds; truncate so returned records match
		// what a later read decodes.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *DriverRepository) Create(ctx context.Context, input *models.DriverInput) (*models.Driver, error) {
	driver, err := models.NewDriver(input, utils.NewID(utils.DriverIDPrefix), r.now())
	if err != nil {
		return nil, err
	}

	if _, err := r.collection.InsertOne(ctx, driver); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.ValidationError("email", "a driver with this email already exists")
		}
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return driver, nil
}

func (r *DriverRepository) FindAll(ctx context.Context) ([]*models.Driver, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer cursor.Close(ctx)

	drivers := make([]*models.Driver, 0)
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, fmt.Errorf("failed to decode drivers: %w", err)
	}

	return drivers, nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id string) (*models.Driver, error) {
	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("driver", id)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return &driver, nil
}

// UpdateStatus is a single FindOneAndUpdate: $set for the status fields and
// $push onto application_history, so concurrent updates never lose entries.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Driver, error) {
	now := r.now()

	set := bson.M{
		"application_status": status,
		"updated_at":         now,
	}
	if notes != nil {
		set["notes"] = *notes
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"application_history": models.FormatHistoryEntry(status, now, notes)},
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *DriverRepository) UpdateOperationalStatus(ctx context.Context, id string, status models.OperationalStatus) (*models.Driver, error) {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": r.now(),
		},
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *DriverRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*models.Driver, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var driver models.Driver
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("driver", id)
		}
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	return &driver, nil
}
