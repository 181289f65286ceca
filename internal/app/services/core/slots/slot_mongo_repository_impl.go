package slots

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

type SlotMongoRepository struct {
	Collection *mongo.Collection
}

func NewSlotMongoRepository(db *mongo.Client, dbName string) contracts.SlotRepository {
	return &SlotMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSlots),
	}
}

// InsertSlots runs the overlap check and the insert inside one transaction
// so a concurrent insert for the same provider cannot slip between them.
func (repo *SlotMongoRepository) InsertSlots(ctx context.Context, slots []models.Slot) ([]models.Slot, error) {
	session, err := repo.Collection.Database().Client().StartSession()
	if err != nil {
		return nil, exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		for i := range slots {
			filter := bson.M{
				"providerId": slots[i].ProviderID,
				"startTime":  bson.M{"$lt": slots[i].EndTime},
				"endTime":    bson.M{"$gt": slots[i].StartTime},
			}
			count, err := repo.Collection.CountDocuments(sessCtx, filter)
			if err != nil {
				return nil, exceptions.ErrMongoDBFindDocument(err)
			}
			if count > 0 {
				return nil, exceptions.ErrSlotOverlap(nil)
			}
		}

		docs := make([]interface{}, 0, len(slots))
		for i := range slots {
			docs = append(docs, slots[i])
		}
		insertResult, err := repo.Collection.InsertMany(sessCtx, docs)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, exceptions.ErrSlotOverlap(err)
			}
			return nil, exceptions.ErrMongoDBInsertDocument(err)
		}
		for i, insertedID := range insertResult.InsertedIDs {
			slots[i].ID = insertedID.(primitive.ObjectID)
		}
		return slots, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.Slot), nil
}

// InsertSlotsIgnoreDuplicates inserts unordered and swallows duplicate key
// errors, so re-running a recurrence expansion only adds the missing slots.
// It returns the number of documents actually inserted.
func (repo *SlotMongoRepository) InsertSlotsIgnoreDuplicates(ctx context.Context, slots []models.Slot) (int, error) {
	docs := make([]interface{}, 0, len(slots))
	for i := range slots {
		docs = append(docs, slots[i])
	}

	opts := options.InsertMany().SetOrdered(false)
	insertResult, err := repo.Collection.InsertMany(ctx, docs, opts)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, exceptions.ErrMongoDBInsertDocument(err)
	}
	if insertResult == nil {
		return 0, nil
	}
	return len(insertResult.InsertedIDs), nil
}

func (repo *SlotMongoRepository) FindByID(ctx context.Context, slotID primitive.ObjectID) (*models.Slot, error) {
	var slot models.Slot
	err := repo.Collection.FindOne(ctx, bson.M{"_id": slotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &slot, nil
}

func (repo *SlotMongoRepository) FindByProviderAndRange(ctx context.Context, providerID primitive.ObjectID, from, to time.Time, status models.SlotStatus) ([]models.Slot, error) {
	filter := bson.M{
		"providerId": providerID,
		"startTime":  bson.M{"$gte": from, "$lt": to},
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return slots, nil
}

// UpdateStatus is the compare-and-swap every booking path relies on. The
// filter carries the expected status, so a concurrent transition makes
// MatchedCount zero instead of overwriting it.
func (repo *SlotMongoRepository) UpdateStatus(ctx context.Context, slotID primitive.ObjectID, from, to models.SlotStatus, appointmentID *primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":    slotID,
		"status": from,
	}

	set := bson.M{
		"status":    to,
		"updatedAt": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if appointmentID != nil {
		set["appointmentId"] = *appointmentID
	} else {
		update["$unset"] = bson.M{"appointmentId": ""}
	}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *SlotMongoRepository) DeleteFree(ctx context.Context, slotID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":    slotID,
		"status": models.SlotStatusFree,
	}
	result, err := repo.Collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount == 1, nil
}
