package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medicmanager/clinic-api/internal/config"
	"github.com/medicmanager/clinic-api/internal/domain"
	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:    true,
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&practitioner.Practitioner{},
		&patient.Patient{},
		&appointment.Appointment{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createConstraints(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Case-insensitive email uniqueness for both directories.
		{
			name:  "uq_practitioners_email_lower",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_practitioners_email_lower ON practitioners (LOWER(email))`,
		},
		{
			name:  "uq_patients_email_lower",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_patients_email_lower ON patients (LOWER(email))`,
		},
		// Storage-level backstop for the scheduler's conflict check: two
		// concurrent creates for the same slot cannot both commit.
		{
			name:  "uq_appointments_practitioner_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_practitioner_slot ON appointments (practitioner_id, appointment_date, appointment_hour, appointment_minute)`,
		},
		{
			name:  "uq_appointments_patient_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_patient_slot ON appointments (patient_id, appointment_date, appointment_hour, appointment_minute)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	// Foreign keys: the patient side cascades, the practitioner side does
	// not — deleting a practitioner with live appointments is rejected.
	// ADD CONSTRAINT has no IF NOT EXISTS, so reruns are ignored.
	constraints := []string{
		`ALTER TABLE appointments ADD CONSTRAINT fk_appointments_patient FOREIGN KEY (patient_id) REFERENCES patients (id) ON DELETE CASCADE`,
		`ALTER TABLE appointments ADD CONSTRAINT fk_appointments_practitioner FOREIGN KEY (practitioner_id) REFERENCES practitioners (id)`,
	}
	for _, query := range constraints {
		_ = db.Exec(query).Error
	}

	return nil
}
