package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medicmanager/clinic-api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return patient.ErrPatientAlreadyExists
	}
	return err
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	err := r.db.WithContext(ctx).Save(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return patient.ErrPatientAlreadyExists
	}
	return err
}

func (r *PatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	var out []*patient.Patient
	if err := r.db.WithContext(ctx).Order("surname, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return out, nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id).Error
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting patients by email: %w", err)
	}
	return count > 0, nil
}
