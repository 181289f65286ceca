package contracts

import (
	"context"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RecurrencePlanRepository interface {
	Create(ctx context.Context, plan *models.RecurrencePlan) (*models.RecurrencePlan, error)
	FindByID(ctx context.Context, planID primitive.ObjectID) (*models.RecurrencePlan, error)
	FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]models.RecurrencePlan, error)
	UpdateGeneratedUntil(ctx context.Context, planID primitive.ObjectID, generatedUntil string) error
	Delete(ctx context.Context, planID primitive.ObjectID) error
}

type ScheduleUsecase interface {
	GetAvailability(ctx context.Context, request *requests.GetAvailability) (*responses.Availability, error)
	CreateSlots(ctx context.Context, providerID string, request *requests.CreateSlots) ([]responses.Slot, error)
	DeleteSlot(ctx context.Context, providerID, slotID string) error
	CreateRecurrencePlan(ctx context.Context, providerID string, request *requests.CreateRecurrencePlan) (*responses.RecurrencePlan, error)
	ListRecurrencePlans(ctx context.Context, providerID string) ([]responses.RecurrencePlan, error)
	DeleteRecurrencePlan(ctx context.Context, providerID, planID string) error
	ExpandRecurrence(ctx context.Context, providerID, planID string, request *requests.ExpandRecurrence) (*responses.ExpandRecurrence, error)
}
