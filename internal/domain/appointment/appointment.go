package appointment

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "PENDING"
	StatusInProgress          AppointmentStatus = "IN_PROGRESS"
	StatusCompleted           AppointmentStatus = "COMPLETED"
	StatusMissedByPatient     AppointmentStatus = "MISSED_BY_PATIENT"
	StatusMissedByOtherReason AppointmentStatus = "MISSED_BY_OTHER_REASON"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusMissedByPatient, StatusMissedByOtherReason:
		return true
	}
	return false
}

// Weekday is stored alongside the date rather than derived from it. The wire
// format carries both, so the service cross-validates them on writes.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

func (w Weekday) IsValid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

func (w Weekday) IsWeekend() bool {
	return w == Saturday || w == Sunday
}

var weekdayOf = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf returns the weekday of the given calendar date.
func WeekdayOf(date time.Time) Weekday {
	return weekdayOf[date.Weekday()]
}

// DateOnly truncates a timestamp to its calendar date in UTC. Appointment
// dates are compared by day, never by instant.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Date    time.Time         `gorm:"column:appointment_date;type:date;not null;index"`
	Weekday Weekday           `gorm:"column:appointment_weekday;type:varchar(10);not null"`
	Hour    int               `gorm:"column:appointment_hour;not null"`
	Minute  int               `gorm:"column:appointment_minute;not null"`
	Status  AppointmentStatus `gorm:"column:status;type:varchar(30);not null"`

	PractitionerID uuid.UUID `gorm:"column:practitioner_id;type:uuid;not null;index"`
	PatientID      uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// SameSlot reports whether the appointment occupies the given slot exactly.
// Overlap coarser than (date, hour, minute) equality does not count.
func (a *Appointment) SameSlot(date time.Time, hour, minute int) bool {
	return a.Date.Equal(DateOnly(date)) && a.Hour == hour && a.Minute == minute
}

// CreateAppointmentCommand carries a candidate booking. ID must be unset;
// appointments are never created with a pre-assigned identity.
type CreateAppointmentCommand struct {
	ID             *uuid.UUID
	Date           time.Time
	Weekday        Weekday
	Hour           int
	Minute         int
	Status         AppointmentStatus
	PractitionerID uuid.UUID
	PatientID      uuid.UUID
}

// UpdateAppointmentCommand replaces every mutable field of an existing
// appointment. ID must be set.
type UpdateAppointmentCommand struct {
	ID             *uuid.UUID
	Date           time.Time
	Weekday        Weekday
	Hour           int
	Minute         int
	Status         AppointmentStatus
	PractitionerID uuid.UUID
	PatientID      uuid.UUID
}
