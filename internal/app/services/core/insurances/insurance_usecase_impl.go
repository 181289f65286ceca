package insurances

import (
	"context"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
	"medplus-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	insuranceUsecaseInstance contracts.InsuranceUsecase
	onceInsuranceUsecase     sync.Once
)

type insuranceUsecase struct {
	InsuranceRepository contracts.InsuranceRepository
	Log                 *zap.Logger
}

func NewInsuranceUsecase(insuranceRepository contracts.InsuranceRepository, logger *zap.Logger) contracts.InsuranceUsecase {
	onceInsuranceUsecase.Do(func() {
		insuranceUsecaseInstance = &insuranceUsecase{
			InsuranceRepository: insuranceRepository,
			Log:                 logger,
		}
	})
	return insuranceUsecaseInstance
}

func (uc *insuranceUsecase) CreateInsurance(ctx context.Context, request *requests.CreateInsurance) (*responses.Insurance, error) {
	now := time.Now().UTC()
	insurance := &models.Insurance{
		Name:        request.Name,
		Description: request.Description,
		Active:      true,
		TimeModel:   models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	created, err := uc.InsuranceRepository.Create(ctx, insurance)
	if err != nil {
		return nil, err
	}
	return buildInsuranceResponse(created), nil
}

func (uc *insuranceUsecase) BulkInsertInsurances(ctx context.Context, request *requests.BulkInsertInsurance) ([]responses.Insurance, error) {
	now := time.Now().UTC()
	insurances := make([]models.Insurance, 0, len(request.Providers))
	for _, provider := range request.Providers {
		insurances = append(insurances, models.Insurance{
			Name:        provider.Name,
			Description: provider.Description,
			Active:      true,
			TimeModel:   models.TimeModel{CreatedAt: now, UpdatedAt: now},
		})
	}

	inserted, err := uc.InsuranceRepository.InsertMany(ctx, insurances)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("insuranceUsecase.BulkInsertInsurances inserted providers",
		zap.Int("inserted_count", len(inserted)),
	)
	return buildInsuranceResponses(inserted), nil
}

func (uc *insuranceUsecase) ListInsurances(ctx context.Context, pagination *requests.Pagination) ([]responses.Insurance, int, error) {
	insurances, total, err := uc.InsuranceRepository.FindAll(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}
	return buildInsuranceResponses(insurances), total, nil
}

func (uc *insuranceUsecase) UpdateInsurance(ctx context.Context, insuranceID string, request *requests.UpdateInsurance) (*responses.Insurance, error) {
	insurance, err := uc.findInsurance(ctx, insuranceID)
	if err != nil {
		return nil, err
	}

	if request.Name != "" {
		insurance.Name = request.Name
	}
	if request.Description != "" {
		insurance.Description = request.Description
	}
	if request.Active != nil {
		insurance.Active = *request.Active
	}

	updated, err := uc.InsuranceRepository.Update(ctx, insurance)
	if err != nil {
		return nil, err
	}
	return buildInsuranceResponse(updated), nil
}

func (uc *insuranceUsecase) DeleteInsurance(ctx context.Context, insuranceID string) error {
	insurance, err := uc.findInsurance(ctx, insuranceID)
	if err != nil {
		return err
	}
	return uc.InsuranceRepository.Delete(ctx, insurance.ID)
}

func (uc *insuranceUsecase) findInsurance(ctx context.Context, insuranceID string) (*models.Insurance, error) {
	insuranceOID, err := primitive.ObjectIDFromHex(insuranceID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	insurance, err := uc.InsuranceRepository.FindByID(ctx, insuranceOID)
	if err != nil {
		return nil, err
	}
	if insurance == nil {
		return nil, exceptions.ErrInsuranceNotFound(nil)
	}
	return insurance, nil
}

func buildInsuranceResponse(insurance *models.Insurance) *responses.Insurance {
	return &responses.Insurance{
		InsuranceID: insurance.ID.Hex(),
		Name:        insurance.Name,
		Description: insurance.Description,
		Active:      insurance.Active,
	}
}

func buildInsuranceResponses(insurances []models.Insurance) []responses.Insurance {
	result := make([]responses.Insurance, 0, len(insurances))
	for i := range insurances {
		result = append(result, *buildInsuranceResponse(&insurances[i]))
	}
	return result
}
