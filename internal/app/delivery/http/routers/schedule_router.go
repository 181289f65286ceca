package routers

import (
	"medplus-service/internal/app/delivery/http/middlewares"
	"medplus-service/internal/app/services/core/schedules"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *schedules.ScheduleController) {
	// Availability is public so patients can browse before logging in.
	router.Get("/{providerID}/availability", scheduleController.GetAvailability)

	router.With(middlewares.Authenticate).Post("/slots", scheduleController.CreateSlots)
	router.With(middlewares.Authenticate).Delete("/slots/{slotID}", scheduleController.DeleteSlot)
	router.With(middlewares.Authenticate).Post("/recurrence-plans", scheduleController.CreateRecurrencePlan)
	router.With(middlewares.Authenticate).Get("/recurrence-plans", scheduleController.ListRecurrencePlans)
	router.With(middlewares.Authenticate).Delete("/recurrence-plans/{planID}", scheduleController.DeleteRecurrencePlan)
	router.With(middlewares.Authenticate).Post("/recurrence-plans/{planID}/expand", scheduleController.ExpandRecurrence)
}
