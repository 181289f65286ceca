package schedules

import (
	"context"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecurrencePlanMongoRepository struct {
	Collection *mongo.Collection
}

func NewRecurrencePlanMongoRepository(db *mongo.Client, dbName string) contracts.RecurrencePlanRepository {
	return &RecurrencePlanMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRecurrencePlans),
	}
}

func (repo *RecurrencePlanMongoRepository) Create(ctx context.Context, plan *models.RecurrencePlan) (*models.RecurrencePlan, error) {
	result, err := repo.Collection.InsertOne(ctx, plan)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	plan.ID = result.InsertedID.(primitive.ObjectID)
	return plan, nil
}

func (repo *RecurrencePlanMongoRepository) FindByID(ctx context.Context, planID primitive.ObjectID) (*models.RecurrencePlan, error) {
	var plan models.RecurrencePlan
	err := repo.Collection.FindOne(ctx, bson.M{"_id": planID}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &plan, nil
}

func (repo *RecurrencePlanMongoRepository) FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]models.RecurrencePlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var plans []models.RecurrencePlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return plans, nil
}

func (repo *RecurrencePlanMongoRepository) UpdateGeneratedUntil(ctx context.Context, planID primitive.ObjectID, generatedUntil string) error {
	update := bson.M{"$set": bson.M{
		"generatedUntil": generatedUntil,
		"updatedAt":      time.Now().UTC(),
	}}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": planID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *RecurrencePlanMongoRepository) Delete(ctx context.Context, planID primitive.ObjectID) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": planID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
