package appointments

import (
	"context"
	"fmt"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
	"medplus-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

type appointmentUsecase struct {
	SlotRepository        contracts.SlotRepository
	AppointmentRepository contracts.AppointmentRepository
	RedisRepository       contracts.RedisRepository
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	slotRepository contracts.SlotRepository,
	appointmentRepository contracts.AppointmentRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			SlotRepository:        slotRepository,
			AppointmentRepository: appointmentRepository,
			RedisRepository:       redisRepository,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

// BookSlot claims the slot before the appointment document exists: the
// appointment ID is generated up front, the slot is swapped free -> booked
// carrying that ID, and only then is the appointment inserted. A failed
// insert swaps the slot back.
func (uc *appointmentUsecase) BookSlot(ctx context.Context, patientID string, request *requests.BookSlot) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	slotOID, err := primitive.ObjectIDFromHex(request.SlotID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	patientOID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	slot, err := uc.SlotRepository.FindByID(ctx, slotOID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrSlotNotFound(nil)
	}
	if slot.Status != models.SlotStatusFree {
		return nil, exceptions.ErrSlotUnavailable(nil)
	}

	appointmentID := primitive.NewObjectID()
	swapped, err := uc.SlotRepository.UpdateStatus(ctx, slot.ID, models.SlotStatusFree, models.SlotStatusBooked, &appointmentID)
	if err != nil {
		return nil, err
	}
	if !swapped {
		uc.Log.Info("appointmentUsecase.BookSlot lost the slot to a concurrent booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slot.ID.Hex()),
		)
		return nil, exceptions.ErrSlotUnavailable(nil)
	}

	now := time.Now().UTC()
	appointment := &models.Appointment{
		ID:           appointmentID,
		SlotID:       slot.ID,
		PatientID:    patientOID,
		ProviderID:   slot.ProviderID,
		StartTime:    slot.StartTime,
		Status:       models.AppointmentStatusPending,
		Notes:        request.Notes,
		ReminderSent: false,
		TimeModel:    models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	created, err := uc.AppointmentRepository.Create(ctx, appointment)
	if err != nil {
		// Free the slot again so the failed insert does not leak a booked
		// slot with no appointment behind it.
		if _, releaseErr := uc.SlotRepository.UpdateStatus(ctx, slot.ID, models.SlotStatusBooked, models.SlotStatusFree, nil); releaseErr != nil {
			uc.Log.Error("appointmentUsecase.BookSlot failed to release slot after insert failure",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSlotIDKey, slot.ID.Hex()),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	uc.invalidateAvailability(ctx, slot.ProviderID)

	uc.Log.Info("appointmentUsecase.BookSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slot.ID.Hex()),
		zap.String(constvars.LoggingAppointmentIDKey, created.ID.Hex()),
	)
	return buildAppointmentResponse(created), nil
}

func (uc *appointmentUsecase) ConfirmAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	return uc.transition(ctx, appointmentID, models.AppointmentStatusConfirmed)
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	return uc.transition(ctx, appointmentID, models.AppointmentStatusCompleted)
}

// CancelAppointment moves the appointment to cancelled and then frees its
// slot. The slot swap is conditional on booked, so a slot the provider
// deleted in between does not fail the cancellation.
func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	result, err := uc.transition(ctx, appointmentID, models.AppointmentStatusCancelled)
	if err != nil {
		return nil, err
	}

	slotOID, err := primitive.ObjectIDFromHex(result.SlotID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	freed, err := uc.SlotRepository.UpdateStatus(ctx, slotOID, models.SlotStatusBooked, models.SlotStatusFree, nil)
	if err != nil {
		return nil, err
	}
	if !freed {
		uc.Log.Warn("appointmentUsecase.CancelAppointment slot was not booked anymore",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, result.SlotID),
		)
	}

	providerOID, err := primitive.ObjectIDFromHex(result.ProviderID)
	if err == nil {
		uc.invalidateAvailability(ctx, providerOID)
	}

	return result, nil
}

func (uc *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID string, pagination *requests.Pagination) ([]responses.Appointment, int, error) {
	patientOID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBNotObjectID(err)
	}

	appointments, total, err := uc.AppointmentRepository.FindByPatient(ctx, patientOID, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *buildAppointmentResponse(&appointments[i]))
	}
	return result, total, nil
}

// transition swaps the status to target; the allowed current statuses come
// from the state machine on the model.
func (uc *appointmentUsecase) transition(ctx context.Context, appointmentID string, to models.AppointmentStatus) (*responses.Appointment, error) {
	appointmentOID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	swapped, err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentOID, models.TransitionSources(to), to)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentOID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if !swapped {
		return nil, exceptions.ErrAppointmentInvalidTransition(nil)
	}

	return buildAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) invalidateAvailability(ctx context.Context, providerID primitive.ObjectID) {
	key := fmt.Sprintf(constvars.RedisKeyAvailabilityVerFormat, providerID.Hex())
	if _, err := uc.RedisRepository.Increment(ctx, key); err != nil {
		uc.Log.Error("appointmentUsecase.invalidateAvailability failed",
			zap.String(constvars.LoggingProviderIDKey, providerID.Hex()),
			zap.Error(err),
		)
	}
}

func buildAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		AppointmentID: appointment.ID.Hex(),
		SlotID:        appointment.SlotID.Hex(),
		PatientID:     appointment.PatientID.Hex(),
		ProviderID:    appointment.ProviderID.Hex(),
		StartTime:     appointment.StartTime,
		Status:        string(appointment.Status),
		Notes:         appointment.Notes,
	}
}
