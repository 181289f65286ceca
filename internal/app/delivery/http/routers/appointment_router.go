package routers

import (
	"medplus-service/internal/app/delivery/http/middlewares"
	"medplus-service/internal/app/services/core/appointments"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *appointments.AppointmentController) {
	router.With(middlewares.Authenticate).Post("/", appointmentController.BookSlot)
	router.With(middlewares.Authenticate).Get("/", appointmentController.GetMyAppointments)
	router.With(middlewares.Authenticate).Post("/{appointmentID}/confirm", appointmentController.ConfirmAppointment)
	router.With(middlewares.Authenticate).Post("/{appointmentID}/cancel", appointmentController.CancelAppointment)
	router.With(middlewares.Authenticate).Post("/{appointmentID}/complete", appointmentController.CompleteAppointment)
}
