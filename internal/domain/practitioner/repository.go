package practitioner

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Practitioner) error

	// GetByID returns ErrPractitionerNotFound if no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Practitioner, error)

	Save(ctx context.Context, p *Practitioner) error

	List(ctx context.Context) ([]*Practitioner, error)

	// Delete removes a practitioner by ID. Deleting an absent ID is a no-op.
	// Appointments referencing the practitioner are left in place.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks uniqueness case-insensitively, optionally
	// excluding one record (the one being updated).
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}
