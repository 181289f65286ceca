package contracts

import (
	"context"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID primitive.ObjectID) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID primitive.ObjectID, page, pageSize int) ([]models.Appointment, int, error)
	// UpdateStatus swaps the status only while the current status is one of
	// from. It reports false when the document was not in any of them.
	UpdateStatus(ctx context.Context, appointmentID primitive.ObjectID, from []models.AppointmentStatus, to models.AppointmentStatus) (bool, error)
	// FindReminderCandidates lists confirmed appointments starting within
	// (windowStart, windowEnd] whose reminder flag is still unset.
	FindReminderCandidates(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error)
	// MarkReminderSent flips reminderSent from false to true. It reports
	// false when another run already flipped it.
	MarkReminderSent(ctx context.Context, appointmentID primitive.ObjectID) (bool, error)
}

type AppointmentUsecase interface {
	BookSlot(ctx context.Context, patientID string, request *requests.BookSlot) (*responses.Appointment, error)
	ConfirmAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	CompleteAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	GetPatientAppointments(ctx context.Context, patientID string, pagination *requests.Pagination) ([]responses.Appointment, int, error)
}
