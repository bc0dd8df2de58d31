package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrWeekendNotBookable  = errors.New("appointments cannot be booked on Saturday or Sunday")
	ErrSlotOutsideGrid     = errors.New("appointment time is outside the bookable slot grid")
	ErrPractitionerBusy    = errors.New("practitioner already has an appointment at this date and time")
	ErrPatientBusy         = errors.New("patient already has an appointment at this date and time")

	// ErrSlotTaken is surfaced when the unique booking index rejects a write
	// that raced past the in-service conflict check.
	ErrSlotTaken = errors.New("slot was booked concurrently")
)
