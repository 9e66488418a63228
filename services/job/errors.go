package job

import "fmt"

// LifecycleError is a domain error with a stable code so callers can branch
// on kind rather than message text.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches lifecycle errors by code, making errors.Is work against the
// predeclared values below.
func (e *LifecycleError) Is(target error) bool {
	t, ok := target.(*LifecycleError)
	return ok && t.Code == e.Code
}

var (
	// ErrAlreadyAccepted reports a lost accept race: another worker
	// claimed the job first.
	ErrAlreadyAccepted = &LifecycleError{Code: "alreadyAccepted", Message: "this job has already been accepted by another worker"}
	// ErrInvalidOTP reports a start attempt with the wrong code.
	ErrInvalidOTP = &LifecycleError{Code: "invalidOTP", Message: "Invalid OTP"}
	// ErrInvalidTransition reports a transition from a state that does not allow it.
	ErrInvalidTransition = &LifecycleError{Code: "invalidTransition", Message: "job is not in a state that allows this action"}
	// ErrNotPermitted reports an actor without rights over the job.
	ErrNotPermitted = &LifecycleError{Code: "notPermitted", Message: "you are not permitted to perform this action on this job"}
	// ErrJobNotFound reports a missing job.
	ErrJobNotFound = &LifecycleError{Code: "jobNotFound", Message: "job not found"}
	// ErrWorkerNotEligible reports a worker who is not verified and online.
	ErrWorkerNotEligible = &LifecycleError{Code: "workerNotEligible", Message: "worker must be verified and online"}
	// ErrValidation reports malformed input.
	ErrValidation = &LifecycleError{Code: "validation", Message: "invalid input"}
)

// validationError returns ErrValidation's kind with a specific message.
func validationError(msg string) error {
	return &LifecycleError{Code: "validation", Message: msg}
}
