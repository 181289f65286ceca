package main

import (
	"context"
	"log"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/drivers/database"
	"medplus-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ensures the indexes the service relies on. The unique slot index is the
// backstop that makes recurrence expansion idempotent under concurrency.
func main() {
	driverConfig := config.NewDriverConfig()
	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(driverConfig.MongoDB.DbName)

	ensureIndexes(ctx, db.Collection(constvars.MongoCollectionUsers), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	ensureIndexes(ctx, db.Collection(constvars.MongoCollectionSlots), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "startTime", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "startTime", Value: 1},
			},
		},
	})

	ensureIndexes(ctx, db.Collection(constvars.MongoCollectionAppointments), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "reminderSent", Value: 1},
				{Key: "startTime", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "startTime", Value: -1},
			},
		},
	})

	ensureIndexes(ctx, db.Collection(constvars.MongoCollectionRecurrencePlans), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "weekday", Value: 1},
				{Key: "startTime", Value: 1},
			},
		},
	})

	if err := client.Disconnect(ctx); err != nil {
		log.Fatalf("Error disconnecting from mongo database: %v", err)
	}

	log.Println("All indexes ensured")
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	names, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Fatalf("Error creating indexes on %s: %v", collection.Name(), err)
	}
	log.Printf("Created indexes on %s: %v", collection.Name(), names)
}
