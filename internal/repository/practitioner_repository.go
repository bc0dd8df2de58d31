package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
)

type PractitionerRepository struct {
	db *gorm.DB
}

func NewPractitionerRepository(db *gorm.DB) *PractitionerRepository {
	return &PractitionerRepository{db: db}
}

func (r *PractitionerRepository) Create(ctx context.Context, p *practitioner.Practitioner) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return practitioner.ErrPractitionerAlreadyExists
	}
	return err
}

func (r *PractitionerRepository) GetByID(ctx context.Context, id uuid.UUID) (*practitioner.Practitioner, error) {
	var p practitioner.Practitioner
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, practitioner.ErrPractitionerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching practitioner: %w", err)
	}
	return &p, nil
}

func (r *PractitionerRepository) Save(ctx context.Context, p *practitioner.Practitioner) error {
	err := r.db.WithContext(ctx).Save(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return practitioner.ErrPractitionerAlreadyExists
	}
	return err
}

func (r *PractitionerRepository) List(ctx context.Context) ([]*practitioner.Practitioner, error) {
	var out []*practitioner.Practitioner
	if err := r.db.WithContext(ctx).Order("surname, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing practitioners: %w", err)
	}
	return out, nil
}

func (r *PractitionerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&practitioner.Practitioner{}, "id = ?", id).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return practitioner.ErrPractitionerHasAppointments
	}
	return err
}

func (r *PractitionerRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&practitioner.Practitioner{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting practitioners by email: %w", err)
	}
	return count > 0, nil
}
