package practitioner

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Specialization string

const (
	Pediatrician    Specialization = "PEDIATRICIAN"
	Dermatologist   Specialization = "DERMATOLOGIST"
	Surgeon         Specialization = "SURGEON"
	Physiotherapist Specialization = "PHYSIOTHERAPIST"
	Dentist         Specialization = "DENTIST"
	Neurologist     Specialization = "NEUROLOGIST"
	Cardiologist    Specialization = "CARDIOLOGIST"
	Orthopedist     Specialization = "ORTHOPEDIST"
	Oculist         Specialization = "OCULIST"
	Nurse           Specialization = "NURSE"
)

func (s Specialization) IsValid() bool {
	switch s {
	case Pediatrician, Dermatologist, Surgeon, Physiotherapist, Dentist,
		Neurologist, Cardiologist, Orthopedist, Oculist, Nurse:
		return true
	}
	return false
}

type Practitioner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Surname string `gorm:"column:surname;type:varchar(100);not null"`
	// Uniqueness is case-insensitive, enforced by a functional index on lower(email).
	Email           string           `gorm:"column:email;type:varchar(255);not null"`
	Specializations []Specialization `gorm:"column:specializations;serializer:json;not null"`
	ImageURL        string           `gorm:"column:image_url;type:text"`
}

func (Practitioner) TableName() string {
	return "practitioners"
}

func (p *Practitioner) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}

type CreatePractitionerCommand struct {
	ID              *uuid.UUID
	Name            string
	Surname         string
	Email           string
	Specializations []Specialization
	ImageURL        string
}

type UpdatePractitionerCommand struct {
	ID              *uuid.UUID
	Name            string
	Surname         string
	Email           string
	Specializations []Specialization
	ImageURL        string
}
