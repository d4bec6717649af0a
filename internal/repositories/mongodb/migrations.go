package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gopet/internal/seed"
	"gopet/pkg/database"
)

// DriverMigrations creates the driver indexes and seeds the catalogue
// drivers into an empty collection.
func DriverMigrations(collection string) []database.Migration {
	if collection == "" {
		collection = DriversCollection
	}

	return []database.Migration{
		{
			Version:     1,
			Description: "Create drivers indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
					{Keys: bson.D{{Key: "created_at", Value: -1}}},
					{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
					{Keys: bson.D{{Key: "status", Value: 1}}},
				})
				return err
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(collection).Indexes().DropAll(ctx)
				return err
			},
		},
		{
			Version:     2,
			Description: "Seed catalogue drivers",
			Up: func(ctx context.Context, db *mongo.Database) error {
				coll := db.Collection(collection)

				count, err := coll.CountDocuments(ctx, bson.M{})
				if err != nil {
					return err
				}
				if count > 0 {
					return nil
				}

				drivers := seed.Drivers(time.Now().UTC().Truncate(time.Millisecond))
				docs := make([]interface{}, 0, len(drivers))
				for _, driver := range drivers {
					docs = append(docs, driver)
				}

				if _, err := coll.InsertMany(ctx, docs); err != nil {
					return fmt.Errorf("failed to seed drivers: %w", err)
				}
				return nil
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				ids := make([]string, 0, 3)
				for _, driver := range seed.Drivers(time.Now()) {
					ids = append(ids, driver.ID)
				}
				_, err := db.Collection(collection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
				return err
			},
		},
	}
}
