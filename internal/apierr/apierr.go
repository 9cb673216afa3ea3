package apierr

import "fmt"

// NotFoundError marks a lookup whose target id does not exist. Handlers map
// it to 404; it is never retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError marks a write rejected by a domain rule, e.g. deleting an
// eligibility master that still has links. BlockingRefs carries the count of
// rows blocking the write, zero when not applicable.
type ValidationError struct {
	Msg          string
	BlockingRefs int64
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string, blockingRefs int64) *ValidationError {
	return &ValidationError{Msg: msg, BlockingRefs: blockingRefs}
}

// DatabaseError wraps any store failure not already classified. The wrapped
// transaction has always rolled back before this is returned.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func Database(op string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Err: err}
}

// UpstreamError wraps a text-generator failure (transport error or
// unparsable content). Propagated unchanged, no fallback is synthesized.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("text generation failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func Upstream(err error) *UpstreamError {
	return &UpstreamError{Err: err}
}
