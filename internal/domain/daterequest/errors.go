package daterequest

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("date request not found")
	ErrInvalidDateRange  = errors.New("from date must not be after to date")
	ErrInvalidType       = errors.New("invalid request type")
	ErrInvalidTransition = errors.New("request is not in a state that allows this transition")
	ErrNotEditable       = errors.New("request can no longer be edited")
	ErrForbidden         = errors.New("not allowed to act on this request")
)

// DependencyError reports a failure in the approval side effects after the
// status transition itself has committed. The request stays Approved; the
// caller decides whether to surface or retry the failed stage.
type DependencyError struct {
	RequestID string
	Stage     string
	Err       error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("approval side effect %q failed for request %s: %v", e.Stage, e.RequestID, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
