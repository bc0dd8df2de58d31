package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound if no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	Save(ctx context.Context, p *Patient) error

	List(ctx context.Context) ([]*Patient, error)

	// Delete removes a patient by ID. Deleting an absent ID is a no-op. The
	// patient's appointments are removed by the service-level cascade, with
	// an ON DELETE CASCADE foreign key as the storage backstop.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks uniqueness case-insensitively, optionally
	// excluding one record (the one being updated).
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}
