package appointments

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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	appointment.ID = result.InsertedID.(primitive.ObjectID)
	return appointment, nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID primitive.ObjectID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := repo.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindByPatient(ctx context.Context, patientID primitive.ObjectID, page, pageSize int) ([]models.Appointment, int, error) {
	filter := bson.M{"patientId": patientID}

	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startTime", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, int(total), nil
}

// UpdateStatus swaps the status while it is still one of from. The current
// status rides in the filter so a lost race shows up as MatchedCount zero.
func (repo *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID primitive.ObjectID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error) {
	filter := bson.M{
		"_id":    appointmentID,
		"status": bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{
		"status":    to,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *AppointmentMongoRepository) FindReminderCandidates(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"status":       models.AppointmentStatusConfirmed,
		"reminderSent": false,
		"startTime":    bson.M{"$gte": windowStart, "$lt": windowEnd},
	}

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

// MarkReminderSent flips the flag with the old value in the filter, so two
// overlapping scans can never both claim the same appointment.
func (repo *AppointmentMongoRepository) MarkReminderSent(ctx context.Context, appointmentID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":          appointmentID,
		"reminderSent": false,
	}
	update := bson.M{"$set": bson.M{
		"reminderSent": true,
		"updatedAt":    time.Now().UTC(),
	}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}
