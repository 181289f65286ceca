package contracts

import (
	"context"
	"medplus-service/internal/app/models"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SlotRepository interface {
	// InsertSlots stores the batch atomically. If any slot overlaps an
	// existing one for the same provider, nothing is stored.
	InsertSlots(ctx context.Context, slots []models.Slot) ([]models.Slot, error)
	// InsertSlotsIgnoreDuplicates inserts unordered, skipping slots that
	// collide with the (providerId, date, startTime) unique index. It
	// reports how many documents were inserted.
	InsertSlotsIgnoreDuplicates(ctx context.Context, slots []models.Slot) (int, error)
	FindByID(ctx context.Context, slotID primitive.ObjectID) (*models.Slot, error)
	FindByProviderAndRange(ctx context.Context, providerID primitive.ObjectID, from, to time.Time, status models.SlotStatus) ([]models.Slot, error)
	// UpdateStatus transitions the slot from one status to another in a
	// single compare-and-swap. It reports false when the slot was not in
	// the expected status anymore.
	UpdateStatus(ctx context.Context, slotID primitive.ObjectID, from, to models.SlotStatus, appointmentID *primitive.ObjectID) (bool, error)
	// DeleteFree removes the slot only while it is still free.
	DeleteFree(ctx context.Context, slotID primitive.ObjectID) (bool, error)
}
