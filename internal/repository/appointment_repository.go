package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medicmanager/clinic-api/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The unique slot index caught a write that raced past the
		// in-service conflict check.
		return appointment.ErrSlotTaken
	}
	return err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) Save(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Save(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appointment.ErrSlotTaken
	}
	return err
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Order("appointment_date, appointment_hour, appointment_minute").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Zero rows affected is fine: delete is idempotent.
	return r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "id = ?", id).Error
}

func (r *AppointmentRepository) ListByPractitionerAndDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("practitioner_id = ? AND appointment_date = ?", practitionerID, appointment.DateOnly(date)).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing practitioner appointments: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepository) ListByPatientAndDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND appointment_date = ?", patientID, appointment.DateOnly(date)).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing patient appointments: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "patient_id = ?", patientID)
	if res.Error != nil {
		return 0, fmt.Errorf("deleting patient appointments: %w", res.Error)
	}
	return res.RowsAffected, nil
}
