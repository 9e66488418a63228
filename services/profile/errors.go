package profile

import "fmt"

// ProfileError is a domain error with a stable code for branching.
type ProfileError struct {
	Code    string
	Message string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProfileError) Is(target error) bool {
	t, ok := target.(*ProfileError)
	return ok && t.Code == e.Code
}

var (
	// ErrInvalidCredentials reports a failed login. The message never says
	// which of email or password was wrong.
	ErrInvalidCredentials = &ProfileError{Code: "invalidCredentials", Message: "invalid email or password"}
	// ErrSuspended reports a suspended account attempting to authenticate.
	ErrSuspended = &ProfileError{Code: "suspended", Message: "account is suspended"}
	// ErrRegistrationClosed reports registration while disabled in settings.
	ErrRegistrationClosed = &ProfileError{Code: "registrationClosed", Message: "registration is currently disabled"}
	// ErrEmailTaken reports a duplicate registration email.
	ErrEmailTaken = &ProfileError{Code: "emailTaken", Message: "an account with this email already exists"}
	// ErrProfileNotFound reports a missing profile.
	ErrProfileNotFound = &ProfileError{Code: "profileNotFound", Message: "profile not found"}
	// ErrNotWorker reports a worker-only operation on a non-worker profile.
	ErrNotWorker = &ProfileError{Code: "notWorker", Message: "this operation applies to worker accounts only"}
	// ErrValidation reports malformed input.
	ErrValidation = &ProfileError{Code: "validation", Message: "invalid input"}
)

// validationError returns ErrValidation's kind with a specific message.
func validationError(msg string) error {
	return &ProfileError{Code: "validation", Message: msg}
}
