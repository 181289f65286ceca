package routers

import (
	"medplus-service/internal/app/delivery/http/middlewares"
	"medplus-service/internal/app/services/core/insurances"

	"github.com/go-chi/chi/v5"
)

func attachInsuranceRoutes(router chi.Router, middlewares *middlewares.Middlewares, insuranceController *insurances.InsuranceController) {
	router.Get("/", insuranceController.ListInsurances)
	router.With(middlewares.Authenticate).Post("/", insuranceController.CreateInsurance)
	router.With(middlewares.Authenticate).Post("/bulk", insuranceController.BulkInsertInsurances)
	router.With(middlewares.Authenticate).Put("/{insuranceID}", insuranceController.UpdateInsurance)
	router.With(middlewares.Authenticate).Delete("/{insuranceID}", insuranceController.DeleteInsurance)
}
