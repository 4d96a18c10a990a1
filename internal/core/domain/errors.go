package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound  = errors.New("user not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrPhotoNotFound = errors.New("photo not found")

	ErrUserExists         = errors.New("user already exists")
	ErrTeamCodeTaken      = errors.New("team code already in use")
	ErrTeamHasPhotos      = errors.New("team still has photos")
	ErrUserCodeExhausted  = errors.New("no user codes left")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrApprovalInProgress = errors.New("approval already in progress")

	// ErrMirrorDisabled is returned by mirrors that have no credentials configured.
	ErrMirrorDisabled = errors.New("mirror disabled")

	ErrValidation = errors.New("validation failed")
)

// ValidationError carries a client-facing reason for rejected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a ValidationError with the given reason.
func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
