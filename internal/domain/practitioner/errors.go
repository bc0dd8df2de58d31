package practitioner

import "errors"

var (
	ErrPractitionerNotFound      = errors.New("practitioner not found")
	ErrPractitionerAlreadyExists = errors.New("practitioner with this email already exists")
	ErrInvalidSpecialization     = errors.New("invalid specialization")

	// ErrPractitionerHasAppointments: practitioner deletion does not cascade;
	// the foreign key rejects deleting a practitioner with live appointments.
	ErrPractitionerHasAppointments = errors.New("practitioner still has appointments")
)
