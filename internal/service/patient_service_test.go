package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicmanager/clinic-api/internal/domain/patient"
)

func patientCommand(email string) *patient.CreatePatientCommand {
	return &patient.CreatePatientCommand{
		Name:      "Alan",
		Surname:   "Turing",
		Email:     email,
		Birthdate: time.Date(1990, 6, 23, 0, 0, 0, 0, time.UTC),
		Gender:    patient.GenderMale,
	}
}

func TestCreatePatient(t *testing.T) {
	env := newTestEnv()

	p, err := env.patientSvc.CreatePatient(context.Background(), patientCommand("alan@clinic.test"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, p.ID)

	got, err := env.patientSvc.GetPatientByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alan", got.Name)
	assert.Equal(t, "alan@clinic.test", got.Email)
	assert.Equal(t, patient.GenderMale, got.Gender)
}

func TestCreatePatientDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.patientSvc.CreatePatient(ctx, patientCommand("alan@clinic.test"))
	require.NoError(t, err)

	_, err = env.patientSvc.CreatePatient(ctx, patientCommand("alan@clinic.test"))
	assert.ErrorIs(t, err, patient.ErrPatientAlreadyExists)

	// Uniqueness is case-insensitive.
	_, err = env.patientSvc.CreatePatient(ctx, patientCommand("ALAN@Clinic.Test"))
	assert.ErrorIs(t, err, patient.ErrPatientAlreadyExists)
}

func TestCreatePatientValidation(t *testing.T) {
	env := newTestEnv()

	t.Run("missing fields", func(t *testing.T) {
		_, err := env.patientSvc.CreatePatient(context.Background(), &patient.CreatePatientCommand{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name is required")
		assert.Contains(t, verr.Fields, "surname is required")
		assert.Contains(t, verr.Fields, "email is required")
		assert.Contains(t, verr.Fields, "birthdate is required")
		assert.Contains(t, verr.Fields, "gender is required")
	})

	t.Run("future birthdate", func(t *testing.T) {
		cmd := patientCommand("alan@clinic.test")
		cmd.Birthdate = time.Now().AddDate(1, 0, 0)
		_, err := env.patientSvc.CreatePatient(context.Background(), cmd)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "birthdate cannot be in the future")
	})

	t.Run("invalid gender", func(t *testing.T) {
		cmd := patientCommand("alan@clinic.test")
		cmd.Gender = "unknown"
		_, err := env.patientSvc.CreatePatient(context.Background(), cmd)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "gender is invalid")
	})

	t.Run("id must not be set", func(t *testing.T) {
		cmd := patientCommand("alan@clinic.test")
		id := uuid.New()
		cmd.ID = &id
		_, err := env.patientSvc.CreatePatient(context.Background(), cmd)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "id must not be set")
	})
}

func TestUpdatePatient(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	p, err := env.patientSvc.CreatePatient(ctx, patientCommand("alan@clinic.test"))
	require.NoError(t, err)

	updated, err := env.patientSvc.UpdatePatient(ctx, &patient.UpdatePatientCommand{
		ID:        &p.ID,
		Name:      "Ada",
		Surname:   "Lovelace",
		Email:     "alan@clinic.test", // unchanged email must not collide with itself
		Birthdate: time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC),
		Gender:    patient.GenderFemale,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, patient.GenderFemale, updated.Gender)
}

func TestUpdatePatientEmailTakenByOther(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.patientSvc.CreatePatient(ctx, patientCommand("alan@clinic.test"))
	require.NoError(t, err)
	other, err := env.patientSvc.CreatePatient(ctx, patientCommand("ada@clinic.test"))
	require.NoError(t, err)

	cmd := &patient.UpdatePatientCommand{
		ID:        &other.ID,
		Name:      other.Name,
		Surname:   other.Surname,
		Email:     "alan@clinic.test",
		Birthdate: other.Birthdate,
		Gender:    other.Gender,
	}
	_, err = env.patientSvc.UpdatePatient(ctx, cmd)
	assert.ErrorIs(t, err, patient.ErrPatientAlreadyExists)
}

func TestUpdatePatientNotFound(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	cmd := patientCommand("alan@clinic.test")

	_, err := env.patientSvc.UpdatePatient(context.Background(), &patient.UpdatePatientCommand{
		ID:        &id,
		Name:      cmd.Name,
		Surname:   cmd.Surname,
		Email:     cmd.Email,
		Birthdate: cmd.Birthdate,
		Gender:    cmd.Gender,
	})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestDeletePatientCascadesAppointments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	pr1 := env.addPractitioner("grace@clinic.test")
	pr2 := env.addPractitioner("edsger@clinic.test")
	target := env.addPatient("alan@clinic.test")
	bystander := env.addPatient("ada@clinic.test")

	slots := []struct {
		practitionerID uuid.UUID
		hour, minute   int
	}{
		{pr1.ID, 9, 0},
		{pr2.ID, 9, 15},
		{pr1.ID, 14, 30},
	}
	for _, s := range slots {
		cmd := bookingCommand(s.practitionerID, target.ID)
		cmd.Hour, cmd.Minute = s.hour, s.minute
		_, err := env.appointmentSvc.CreateAppointment(ctx, cmd)
		require.NoError(t, err)
	}

	other := bookingCommand(pr2.ID, bystander.ID)
	other.Hour, other.Minute = 16, 45
	kept, err := env.appointmentSvc.CreateAppointment(ctx, other)
	require.NoError(t, err)

	require.NoError(t, env.patientSvc.DeletePatient(ctx, target.ID))

	// The patient and every appointment they held are gone.
	_, err = env.patientSvc.GetPatientByID(ctx, target.ID)
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
	assert.Equal(t, 1, env.appointments.count())

	// The unrelated booking and both practitioners survive.
	_, err = env.appointmentSvc.GetAppointmentByID(ctx, kept.ID)
	assert.NoError(t, err)
	_, err = env.practitionerSvc.GetPractitionerByID(ctx, pr1.ID)
	assert.NoError(t, err)
	_, err = env.practitionerSvc.GetPractitionerByID(ctx, pr2.ID)
	assert.NoError(t, err)
}

func TestDeletePatientIdempotent(t *testing.T) {
	env := newTestEnv()
	assert.NoError(t, env.patientSvc.DeletePatient(context.Background(), uuid.New()))
}

func TestDeletePatientNilID(t *testing.T) {
	env := newTestEnv()
	var verr *ValidationError
	err := env.patientSvc.DeletePatient(context.Background(), uuid.Nil)
	assert.ErrorAs(t, err, &verr)
}

func TestDeletePatientFreesSlot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pr := env.addPractitioner("grace@clinic.test")
	gone := env.addPatient("alan@clinic.test")
	next := env.addPatient("ada@clinic.test")

	booked := bookingCommand(pr.ID, gone.ID)
	booked.Hour, booked.Minute = 10, 0
	_, err := env.appointmentSvc.CreateAppointment(ctx, booked)
	require.NoError(t, err)

	require.NoError(t, env.patientSvc.DeletePatient(ctx, gone.ID))

	rebook := bookingCommand(pr.ID, next.ID)
	rebook.Hour, rebook.Minute = 10, 0
	_, err = env.appointmentSvc.CreateAppointment(ctx, rebook)
	assert.NoError(t, err, "cascade delete must free the practitioner slot")
}
