package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
	"github.com/medicmanager/clinic-api/internal/lock"
	"github.com/medicmanager/clinic-api/pkg/metrics"
)

// AppointmentService is the booking scheduler. Each call is a single-pass
// pipeline: structural validation, slot-grid validation, party resolution,
// conflict detection, persistence. Any stage failure returns immediately
// and nothing is written.
type AppointmentService struct {
	repo             appointment.Repository
	practitionerRepo practitioner.Repository
	patientRepo      patient.Repository
	locker           lock.Locker
	auditSvc         *AuditService
	metrics          *metrics.Collector
	log              *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	practitionerRepo practitioner.Repository,
	patientRepo patient.Repository,
	locker lock.Locker,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:             repo,
		practitionerRepo: practitionerRepo,
		patientRepo:      patientRepo,
		locker:           locker,
		auditSvc:         auditSvc,
		metrics:          m,
		log:              log,
	}
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	if err := validateAppointmentFields(cmd.ID, false, cmd.Date, cmd.Weekday, cmd.Status, cmd.PractitionerID, cmd.PatientID); err != nil {
		return nil, err
	}
	if err := appointment.ValidateSlot(cmd.Weekday, cmd.Hour, cmd.Minute); err != nil {
		return nil, err
	}

	p, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}
	pr, err := s.practitionerRepo.GetByID(ctx, cmd.PractitionerID)
	if err != nil {
		return nil, err
	}

	date := appointment.DateOnly(cmd.Date)

	a := &appointment.Appointment{
		Date:           date,
		Weekday:        cmd.Weekday,
		Hour:           cmd.Hour,
		Minute:         cmd.Minute,
		Status:         cmd.Status,
		PractitionerID: pr.ID,
		PatientID:      p.ID,
	}

	keys := slotKeys(pr.ID, p.ID, date, cmd.Hour, cmd.Minute)
	err = s.locker.WithSlotLocks(ctx, keys, func(lockCtx context.Context) error {
		if err := s.checkConflicts(lockCtx, date, cmd.Hour, cmd.Minute, pr.ID, p.ID, nil); err != nil {
			return err
		}
		return s.repo.Create(lockCtx, a)
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			return nil, appointment.ErrSlotTaken
		}
		if isBookingError(err) {
			s.metrics.BookingConflictsTotal.Inc()
			return nil, err
		}
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.metrics.AppointmentsBookedTotal.WithLabelValues(string(a.Status)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
	})
	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID.String()),
		zap.String("practitioner_id", pr.ID.String()),
		zap.String("patient_id", p.ID.String()),
	)

	return a, nil
}

func (s *AppointmentService) UpdateAppointment(ctx context.Context, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	if err := validateAppointmentFields(cmd.ID, true, cmd.Date, cmd.Weekday, cmd.Status, cmd.PractitionerID, cmd.PatientID); err != nil {
		return nil, err
	}
	if err := appointment.ValidateSlot(cmd.Weekday, cmd.Hour, cmd.Minute); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(ctx, *cmd.ID)
	if err != nil {
		return nil, err
	}

	p, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}
	pr, err := s.practitionerRepo.GetByID(ctx, cmd.PractitionerID)
	if err != nil {
		return nil, err
	}

	date := appointment.DateOnly(cmd.Date)

	keys := slotKeys(pr.ID, p.ID, date, cmd.Hour, cmd.Minute)
	err = s.locker.WithSlotLocks(ctx, keys, func(lockCtx context.Context) error {
		// The record being updated frees its old slot; it must not collide
		// with itself, so it is excluded from the conflict set by ID.
		if err := s.checkConflicts(lockCtx, date, cmd.Hour, cmd.Minute, pr.ID, p.ID, &target.ID); err != nil {
			return err
		}

		target.Date = date
		target.Weekday = cmd.Weekday
		target.Hour = cmd.Hour
		target.Minute = cmd.Minute
		target.Status = cmd.Status
		target.PractitionerID = pr.ID
		target.PatientID = p.ID

		return s.repo.Save(lockCtx, target)
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			return nil, appointment.ErrSlotTaken
		}
		if isBookingError(err) {
			s.metrics.BookingConflictsTotal.Inc()
			return nil, err
		}
		s.log.Error("failed to update appointment", zap.Error(err))
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   target.ID.String(),
	})

	return target, nil
}

func (s *AppointmentService) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if id == uuid.Nil {
		return nil, &ValidationError{Fields: []string{"id is required"}}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) ListAppointments(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repo.List(ctx)
}

// DeleteAppointment removes an appointment by ID. Deleting an ID that does
// not exist succeeds without effect.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return &ValidationError{Fields: []string{"id is required"}}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "appointment",
		ResourceID:   id.String(),
	})
	return nil
}

// checkConflicts enforces the double-booking rule at exact (date, hour,
// minute) equality. The patient check runs before the practitioner check;
// when both parties are busy, the patient conflict is the one reported.
func (s *AppointmentService) checkConflicts(ctx context.Context, date time.Time, hour, minute int, practitionerID, patientID uuid.UUID, excludeID *uuid.UUID) error {
	patientAppointments, err := s.repo.ListByPatientAndDate(ctx, patientID, date)
	if err != nil {
		return fmt.Errorf("listing patient appointments: %w", err)
	}
	if anyInSlot(patientAppointments, date, hour, minute, excludeID) {
		return appointment.ErrPatientBusy
	}

	practitionerAppointments, err := s.repo.ListByPractitionerAndDate(ctx, practitionerID, date)
	if err != nil {
		return fmt.Errorf("listing practitioner appointments: %w", err)
	}
	if anyInSlot(practitionerAppointments, date, hour, minute, excludeID) {
		return appointment.ErrPractitionerBusy
	}

	return nil
}

func anyInSlot(appointments []*appointment.Appointment, date time.Time, hour, minute int, excludeID *uuid.UUID) bool {
	for _, a := range appointments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.SameSlot(date, hour, minute) {
			return true
		}
	}
	return false
}

func slotKeys(practitionerID, patientID uuid.UUID, date time.Time, hour, minute int) []string {
	day := date.Format("2006-01-02")
	return []string{
		fmt.Sprintf("practitioner:%s:%s:%02d:%02d", practitionerID, day, hour, minute),
		fmt.Sprintf("patient:%s:%s:%02d:%02d", patientID, day, hour, minute),
	}
}

func isBookingError(err error) bool {
	return errors.Is(err, appointment.ErrPatientBusy) ||
		errors.Is(err, appointment.ErrPractitionerBusy) ||
		errors.Is(err, appointment.ErrSlotTaken)
}

func validateAppointmentFields(id *uuid.UUID, wantID bool, date time.Time, weekday appointment.Weekday, status appointment.AppointmentStatus, practitionerID, patientID uuid.UUID) error {
	var errs []string

	if wantID {
		if id == nil || *id == uuid.Nil {
			errs = append(errs, "id is required")
		}
	} else if id != nil {
		errs = append(errs, "id must not be set")
	}

	if date.IsZero() {
		errs = append(errs, "date is required")
	}
	if weekday == "" {
		errs = append(errs, "weekday is required")
	} else if !weekday.IsValid() {
		errs = append(errs, "weekday is invalid")
	} else if !date.IsZero() && appointment.WeekdayOf(appointment.DateOnly(date)) != weekday {
		errs = append(errs, "weekday does not match date")
	}
	if status == "" {
		errs = append(errs, "status is required")
	} else if !status.IsValid() {
		errs = append(errs, "status is invalid")
	}
	if practitionerID == uuid.Nil {
		errs = append(errs, "practitioner_id is required")
	}
	if patientID == uuid.Nil {
		errs = append(errs, "patient_id is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
