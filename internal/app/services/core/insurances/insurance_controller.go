package insurances

import (
	"context"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/exceptions"
	"medplus-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InsuranceController struct {
	Log              *zap.Logger
	InsuranceUsecase contracts.InsuranceUsecase
}

func NewInsuranceController(logger *zap.Logger, insuranceUsecase contracts.InsuranceUsecase) *InsuranceController {
	return &InsuranceController{
		Log:              logger,
		InsuranceUsecase: insuranceUsecase,
	}
}

func (ctrl *InsuranceController) CreateInsurance(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateInsurance)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InsuranceUsecase.CreateInsurance(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.InsuranceCreatedSuccess, result)
}

func (ctrl *InsuranceController) BulkInsertInsurances(w http.ResponseWriter, r *http.Request) {
	request := new(requests.BulkInsertInsurance)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InsuranceUsecase.BulkInsertInsurances(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.InsuranceCreatedSuccess, result)
}

func (ctrl *InsuranceController) ListInsurances(w http.ResponseWriter, r *http.Request) {
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.InsuranceUsecase.ListInsurances(ctx, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.InsuranceGetSuccess, paginationResponse, result)
}

func (ctrl *InsuranceController) UpdateInsurance(w http.ResponseWriter, r *http.Request) {
	insuranceID := chi.URLParam(r, "insuranceID")
	if insuranceID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "insuranceID"))
		return
	}

	request := new(requests.UpdateInsurance)
	if err := utils.ParseAndValidateBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InsuranceUsecase.UpdateInsurance(ctx, insuranceID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InsuranceUpdatedSuccess, result)
}

func (ctrl *InsuranceController) DeleteInsurance(w http.ResponseWriter, r *http.Request) {
	insuranceID := chi.URLParam(r, "insuranceID")
	if insuranceID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "insuranceID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.InsuranceUsecase.DeleteInsurance(ctx, insuranceID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InsuranceDeletedSuccess, nil)
}
