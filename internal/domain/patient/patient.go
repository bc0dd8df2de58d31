package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Surname string `gorm:"column:surname;type:varchar(100);not null"`
	// Uniqueness is case-insensitive, enforced by a functional index on lower(email).
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
	Birthdate time.Time `gorm:"column:birthdate;type:date;not null"`
	Gender    Gender    `gorm:"column:gender;type:varchar(10);not null"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}

func (p *Patient) Age() int {
	now := time.Now()
	years := now.Year() - p.Birthdate.Year()
	if now.Month() < p.Birthdate.Month() ||
		(now.Month() == p.Birthdate.Month() && now.Day() < p.Birthdate.Day()) {
		years--
	}
	return years
}

type CreatePatientCommand struct {
	ID        *uuid.UUID
	Name      string
	Surname   string
	Email     string
	Birthdate time.Time
	Gender    Gender
}

type UpdatePatientCommand struct {
	ID        *uuid.UUID
	Name      string
	Surname   string
	Email     string
	Birthdate time.Time
	Gender    Gender
}
