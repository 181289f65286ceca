package contracts

import (
	"context"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InsuranceRepository interface {
	Create(ctx context.Context, insurance *models.Insurance) (*models.Insurance, error)
	InsertMany(ctx context.Context, insurances []models.Insurance) ([]models.Insurance, error)
	FindAll(ctx context.Context, page, pageSize int) ([]models.Insurance, int, error)
	FindByID(ctx context.Context, insuranceID primitive.ObjectID) (*models.Insurance, error)
	Update(ctx context.Context, insurance *models.Insurance) (*models.Insurance, error)
	Delete(ctx context.Context, insuranceID primitive.ObjectID) error
}

type InsuranceUsecase interface {
	CreateInsurance(ctx context.Context, request *requests.CreateInsurance) (*responses.Insurance, error)
	BulkInsertInsurances(ctx context.Context, request *requests.BulkInsertInsurance) ([]responses.Insurance, error)
	ListInsurances(ctx context.Context, pagination *requests.Pagination) ([]responses.Insurance, int, error)
	UpdateInsurance(ctx context.Context, insuranceID string, request *requests.UpdateInsurance) (*responses.Insurance, error)
	DeleteInsurance(ctx context.Context, insuranceID string) error
}
