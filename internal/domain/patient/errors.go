package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientAlreadyExists = errors.New("patient with this email already exists")
	ErrInvalidGender        = errors.New("invalid gender value")
	ErrInvalidBirthdate     = errors.New("birthdate cannot be in the future")
)
