package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
	"github.com/medicmanager/clinic-api/pkg/metrics"
)

type PractitionerService struct {
	repo     practitioner.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewPractitionerService(repo practitioner.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PractitionerService {
	return &PractitionerService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

func (s *PractitionerService) CreatePractitioner(ctx context.Context, cmd *practitioner.CreatePractitionerCommand) (*practitioner.Practitioner, error) {
	if err := validatePractitionerFields(cmd.ID, false, cmd.Name, cmd.Surname, cmd.Email, cmd.Specializations); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email, nil)
	if err != nil {
		s.log.Error("failed to check email uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if exists {
		return nil, practitioner.ErrPractitionerAlreadyExists
	}

	p := &practitioner.Practitioner{
		Name:            strings.TrimSpace(cmd.Name),
		Surname:         strings.TrimSpace(cmd.Surname),
		Email:           strings.TrimSpace(cmd.Email),
		Specializations: cmd.Specializations,
		ImageURL:        cmd.ImageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create practitioner", zap.Error(err))
		return nil, fmt.Errorf("creating practitioner: %w", err)
	}

	s.metrics.PractitionersCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "practitioner",
		ResourceID:   p.ID.String(),
	})

	return p, nil
}

func (s *PractitionerService) GetPractitionerByID(ctx context.Context, id uuid.UUID) (*practitioner.Practitioner, error) {
	if id == uuid.Nil {
		return nil, &ValidationError{Fields: []string{"id is required"}}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *PractitionerService) ListPractitioners(ctx context.Context) ([]*practitioner.Practitioner, error) {
	return s.repo.List(ctx)
}

func (s *PractitionerService) UpdatePractitioner(ctx context.Context, cmd *practitioner.UpdatePractitionerCommand) (*practitioner.Practitioner, error) {
	if err := validatePractitionerFields(cmd.ID, true, cmd.Name, cmd.Surname, cmd.Email, cmd.Specializations); err != nil {
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
		return nil, practitioner.ErrPractitionerAlreadyExists
	}

	p.Name = strings.TrimSpace(cmd.Name)
	p.Surname = strings.TrimSpace(cmd.Surname)
	p.Email = strings.TrimSpace(cmd.Email)
	p.Specializations = cmd.Specializations
	p.ImageURL = cmd.ImageURL

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("updating practitioner: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "practitioner",
		ResourceID:   p.ID.String(),
	})

	return p, nil
}

// DeletePractitioner removes a practitioner by ID. Appointments referencing
// the practitioner are not cascade-deleted; the foreign key will reject the
// delete while live appointments exist.
func (s *PractitionerService) DeletePractitioner(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return &ValidationError{Fields: []string{"id is required"}}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting practitioner: %w", err)
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "practitioner",
		ResourceID:   id.String(),
	})
	return nil
}

func validatePractitionerFields(id *uuid.UUID, wantID bool, name, surname, email string, specializations []practitioner.Specialization) error {
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
	if len(specializations) == 0 {
		errs = append(errs, "at least one specialization is required")
	}
	for _, sp := range specializations {
		if !sp.IsValid() {
			errs = append(errs, fmt.Sprintf("specialization %q is invalid", sp))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
