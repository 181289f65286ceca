package insurances

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

type InsuranceMongoRepository struct {
	Collection *mongo.Collection
}

func NewInsuranceMongoRepository(db *mongo.Client, dbName string) contracts.InsuranceRepository {
	return &InsuranceMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionInsurances),
	}
}

func (repo *InsuranceMongoRepository) Create(ctx context.Context, insurance *models.Insurance) (*models.Insurance, error) {
	result, err := repo.Collection.InsertOne(ctx, insurance)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	insurance.ID = result.InsertedID.(primitive.ObjectID)
	return insurance, nil
}

func (repo *InsuranceMongoRepository) InsertMany(ctx context.Context, insurances []models.Insurance) ([]models.Insurance, error) {
	documents := make([]interface{}, 0, len(insurances))
	for i := range insurances {
		documents = append(documents, insurances[i])
	}

	result, err := repo.Collection.InsertMany(ctx, documents)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	for i, insertedID := range result.InsertedIDs {
		insurances[i].ID = insertedID.(primitive.ObjectID)
	}
	return insurances, nil
}

func (repo *InsuranceMongoRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Insurance, int, error) {
	total, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	insurances := make([]models.Insurance, 0)
	if err := cursor.All(ctx, &insurances); err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return insurances, int(total), nil
}

func (repo *InsuranceMongoRepository) FindByID(ctx context.Context, insuranceID primitive.ObjectID) (*models.Insurance, error) {
	var insurance models.Insurance
	err := repo.Collection.FindOne(ctx, bson.M{"_id": insuranceID}).Decode(&insurance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &insurance, nil
}

func (repo *InsuranceMongoRepository) Update(ctx context.Context, insurance *models.Insurance) (*models.Insurance, error) {
	insurance.UpdatedAt = time.Now().UTC()
	_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": insurance.ID}, insurance)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return insurance, nil
}

func (repo *InsuranceMongoRepository) Delete(ctx context.Context, insuranceID primitive.ObjectID) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": insuranceID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
