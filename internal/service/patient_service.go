package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/pkg/metrics"
)

type PatientService struct {
	repo            patient.Repository
	appointmentRepo appointment.Repository
	auditSvc        *AuditService
	metrics         *metrics.Collector
	log             *zap.Logger
}

func NewPatientService(repo patient.Repository, appointmentRepo appointment.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		auditSvc:        auditSvc,
		metrics:         m,
		log:             log,
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if err := validatePatientFields(cmd.ID, false, cmd.Name, cmd.Surname, cmd.Email, cmd.Birthdate, cmd.Gender); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email, nil)
	if err != nil {
		s.log.Error("failed to check email uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrPatientAlreadyExists
	}

	p := &patient.Patient{
		Name:      strings.TrimSpace(cmd.Name),
		Surname:   strings.TrimSpace(cmd.Surname),
		Email:     strings.TrimSpace(cmd.Email),
		Birthdate: cmd.Birthdate,
		Gender:    cmd.Gender,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.metrics.PatientsCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
	})

	return p, nil
}

func (s *PatientService) GetPatientByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if id == uuid.Nil {
		return nil, &ValidationError{Fields: []string{"id is required"}}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) UpdatePatient(ctx context.Context, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if err := validatePatientFields(cmd.ID, true, cmd.Name, cmd.Surname, cmd.Email, cmd.Birthdate, cmd.Gender); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, *cmd.ID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email, &p.ID)
	if err != nil {
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrPatientAlreadyExists
	}

	p.Name = strings.TrimSpace(cmd.Name)
	p.Surname = strings.TrimSpace(cmd.Surname)
	p.Email = strings.TrimSpace(cmd.Email)
	p.Birthdate = cmd.Birthdate
	p.Gender = cmd.Gender

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("updating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
	})

	return p, nil
}

// DeletePatient removes a patient together with every appointment the
// patient holds. Practitioners referenced by those appointments are not
// touched. Deleting an absent ID is a no-op.
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return &ValidationError{Fields: []string{"id is required"}}
	}

	removed, err := s.appointmentRepo.DeleteByPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade-deleting appointments: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting patient: %w", err)
	}

	if removed > 0 {
		s.metrics.CascadeDeletedAppointments.Add(float64(removed))
		s.log.Info("cascade-deleted appointments for patient",
			zap.String("patient_id", id.String()),
			zap.Int64("count", removed),
		)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   id.String(),
		Changes:      fmt.Sprintf(`{"cascade_deleted_appointments":%d}`, removed),
	})

	return nil
}

func validatePatientFields(id *uuid.UUID, wantID bool, name, surname, email string, birthdate time.Time, gender patient.Gender) error {
	var errs []string

	if wantID {
		if id == nil || *id == uuid.Nil {
			errs = append(errs, "id is required")
		}
	} else if id != nil {
		errs = append(errs, "id must not be set")
	}

	if strings.TrimSpace(name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(surname) == "" {
		errs = append(errs, "surname is required")
	}
	if strings.TrimSpace(email) == "" {
		errs = append(errs, "email is required")
	}
	if birthdate.IsZero() {
		errs = append(errs, "birthdate is required")
	} else if birthdate.After(time.Now()) {
		errs = append(errs, "birthdate cannot be in the future")
	}
	if gender == "" {
		errs = append(errs, "gender is required")
	} else if !gender.IsValid() {
		errs = append(errs, "gender is invalid")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
