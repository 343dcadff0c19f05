package errs

import "errors"

// Sentinels shared by the command and query sides
var (
	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingConflict = errors.New("apartment already booked for these dates")

	// Apartment errors
	ErrApartmentNotFound = errors.New("apartment not found")

	// Billing errors
	ErrBillingIdentityMissing = errors.New("tenant has no billing identity")
	ErrExternalServiceFailure = errors.New("payment processor call failed")

	// Payment event errors
	ErrInvalidPaymentEvent = errors.New("payment event failed verification")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
