package records

import "fmt"

// NotFoundError indicates a referenced zone or record does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// ConflictError indicates a duplicate record or a concurrent-edit serial
// mismatch. The caller decides whether to reject or retry.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// ExternalServiceError wraps a failure from a remote collaborator such as
// the PowerDNS API. The triggering record change is already committed when
// this error is produced, so callers report it as a warning.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
