package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/config"
	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
	"github.com/medicmanager/clinic-api/internal/repository"
	"github.com/medicmanager/clinic-api/pkg/database"
	"github.com/medicmanager/clinic-api/pkg/logger"
)

const (
	practitionerCount = 20
	patientCount      = 200
)

var specializations = []practitioner.Specialization{
	practitioner.Pediatrician,
	practitioner.Dermatologist,
	practitioner.Surgeon,
	practitioner.Physiotherapist,
	practitioner.Dentist,
	practitioner.Neurologist,
	practitioner.Cardiologist,
	practitioner.Orthopedist,
	practitioner.Oculist,
	practitioner.Nurse,
}

var genders = []patient.Gender{patient.GenderMale, patient.GenderFemale, patient.GenderOther}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("database migration failed", zap.Error(err))
	}

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()

	practitionerRepo := repository.NewPractitionerRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	practitioners := make([]*practitioner.Practitioner, 0, practitionerCount)
	for i := 0; i < practitionerCount; i++ {
		p := &practitioner.Practitioner{
			Name:    gofakeit.FirstName(),
			Surname: gofakeit.LastName(),
			Email:   fmt.Sprintf("practitioner-%d-%s", i, gofakeit.Email()),
			Specializations: []practitioner.Specialization{
				specializations[gofakeit.Number(0, len(specializations)-1)],
			},
			ImageURL: gofakeit.ImageURL(200, 200),
		}
		if err := practitionerRepo.Create(ctx, p); err != nil {
			zlog.Fatal("seeding practitioner failed", zap.Error(err))
		}
		practitioners = append(practitioners, p)
	}
	zlog.Info("seeded practitioners", zap.Int("count", len(practitioners)))

	patients := make([]*patient.Patient, 0, patientCount)
	for i := 0; i < patientCount; i++ {
		p := &patient.Patient{
			Name:      gofakeit.FirstName(),
			Surname:   gofakeit.LastName(),
			Email:     fmt.Sprintf("patient-%d-%s", i, gofakeit.Email()),
			Birthdate: gofakeit.DateRange(time.Now().AddDate(-90, 0, 0), time.Now().AddDate(-18, 0, 0)),
			Gender:    genders[gofakeit.Number(0, len(genders)-1)],
		}
		if err := patientRepo.Create(ctx, p); err != nil {
			zlog.Fatal("seeding patient failed", zap.Error(err))
		}
		patients = append(patients, p)
	}
	zlog.Info("seeded patients", zap.Int("count", len(patients)))

	// Book each patient once on the next weekday grid, spreading patients
	// across practitioners and quarter-hour slots so nothing collides.
	date := nextWeekday(time.Now().AddDate(0, 0, 1))
	bookings := 0
	minutes := []int{0, 15, 30, 45}
	for i, p := range patients {
		pr := practitioners[i%len(practitioners)]
		slot := i / len(practitioners)
		hour := appointment.FirstBookableHour + slot/len(minutes)
		if hour > appointment.LastBookableHour {
			date = nextWeekday(date.AddDate(0, 0, 1))
			break
		}
		a := &appointment.Appointment{
			Date:           appointment.DateOnly(date),
			Weekday:        appointment.WeekdayOf(date),
			Hour:           hour,
			Minute:         minutes[slot%len(minutes)],
			Status:         appointment.StatusPending,
			PractitionerID: pr.ID,
			PatientID:      p.ID,
		}
		if err := appointmentRepo.Create(ctx, a); err != nil {
			zlog.Fatal("seeding appointment failed", zap.Error(err))
		}
		bookings++
	}
	zlog.Info("seeded appointments", zap.Int("count", bookings))
}

func nextWeekday(t time.Time) time.Time {
	for appointment.WeekdayOf(t).IsWeekend() {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
