package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain"
	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
	"github.com/medicmanager/clinic-api/internal/lock"
	"github.com/medicmanager/clinic-api/pkg/metrics"
)

// One collector per test binary: prometheus panics on duplicate registration.
var testMetrics = metrics.NewCollector("test")

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{items: map[uuid.UUID]*appointment.Appointment{}}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Save(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*appointment.Appointment, 0, len(r.items))
	for _, a := range r.items {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeAppointmentRepo) ListByPractitionerAndDate(_ context.Context, practitionerID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := appointment.DateOnly(date)
	var out []*appointment.Appointment
	for _, a := range r.items {
		if a.PractitionerID == practitionerID && a.Date.Equal(day) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByPatientAndDate(_ context.Context, patientID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := appointment.DateOnly(date)
	var out []*appointment.Appointment
	for _, a := range r.items {
		if a.PatientID == patientID && a.Date.Equal(day) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) DeleteByPatient(_ context.Context, patientID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, a := range r.items {
		if a.PatientID == patientID {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakePractitionerRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*practitioner.Practitioner
}

func newFakePractitionerRepo() *fakePractitionerRepo {
	return &fakePractitionerRepo{items: map[uuid.UUID]*practitioner.Practitioner{}}
}

func (r *fakePractitionerRepo) Create(_ context.Context, p *practitioner.Practitioner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePractitionerRepo) GetByID(_ context.Context, id uuid.UUID) (*practitioner.Practitioner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, practitioner.ErrPractitionerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePractitionerRepo) Save(_ context.Context, p *practitioner.Practitioner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePractitionerRepo) List(_ context.Context) ([]*practitioner.Practitioner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*practitioner.Practitioner, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePractitionerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakePractitionerRepo) ExistsByEmail(_ context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type fakePatientRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{items: map[uuid.UUID]*patient.Patient{}}
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Save(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*patient.Patient, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakePatientRepo) ExistsByEmail(_ context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

type testEnv struct {
	appointments    *fakeAppointmentRepo
	practitioners   *fakePractitionerRepo
	patients        *fakePatientRepo
	appointmentSvc  *AppointmentService
	practitionerSvc *PractitionerService
	patientSvc      *PatientService
}

func newTestEnv() *testEnv {
	log := zap.NewNop()
	appointments := newFakeAppointmentRepo()
	practitioners := newFakePractitionerRepo()
	patients := newFakePatientRepo()
	auditSvc := NewAuditService(&fakeAuditRepo{}, log, testMetrics)

	return &testEnv{
		appointments:    appointments,
		practitioners:   practitioners,
		patients:        patients,
		appointmentSvc:  NewAppointmentService(appointments, practitioners, patients, lock.NewNoopLocker(), auditSvc, testMetrics, log),
		practitionerSvc: NewPractitionerService(practitioners, auditSvc, testMetrics, log),
		patientSvc:      NewPatientService(patients, appointments, auditSvc, testMetrics, log),
	}
}

func (e *testEnv) addPractitioner(email string) *practitioner.Practitioner {
	p := &practitioner.Practitioner{
		Name:            "Grace",
		Surname:         "Hopper",
		Email:           email,
		Specializations: []practitioner.Specialization{practitioner.Cardiologist},
	}
	_ = e.practitioners.Create(context.Background(), p)
	return p
}

func (e *testEnv) addPatient(email string) *patient.Patient {
	p := &patient.Patient{
		Name:      "Alan",
		Surname:   "Turing",
		Email:     email,
		Birthdate: time.Date(1990, 6, 23, 0, 0, 0, 0, time.UTC),
		Gender:    patient.GenderMale,
	}
	_ = e.patients.Create(context.Background(), p)
	return p
}
