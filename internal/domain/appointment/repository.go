package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound if no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Save persists all mutable fields of an existing appointment.
	Save(ctx context.Context, a *Appointment) error

	List(ctx context.Context) ([]*Appointment, error)

	// Delete removes an appointment by ID. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByPractitionerAndDate returns every appointment held by the
	// practitioner on the given calendar date.
	ListByPractitionerAndDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Appointment, error)

	// ListByPatientAndDate returns every appointment held by the patient on
	// the given calendar date.
	ListByPatientAndDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*Appointment, error)

	// DeleteByPatient removes all of a patient's appointments and returns how
	// many were deleted. Used by the patient cascade.
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}
