// Package apperrors defines the business errors shared by repositories,
// services, and handlers. Handlers translate them into HTTP responses.
package apperrors

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrTimeSlotNotFound    = errors.New("time slot not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotNotAvailable is returned when a booking targets a slot that is
	// not AVAILABLE, including the case where a concurrent booking won the slot.
	ErrSlotNotAvailable = errors.New("Time slot is not available")

	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrForbidden is returned when the acting principal's role or identity
	// does not match the resource, e.g. a patient booking for someone else.
	ErrForbidden = errors.New("you are not allowed to perform this action")
)

// IsNotFound reports whether err is one of the entity not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDoctorNotFound) ||
		errors.Is(err, ErrPatientNotFound) ||
		errors.Is(err, ErrTimeSlotNotFound) ||
		errors.Is(err, ErrAppointmentNotFound)
}
