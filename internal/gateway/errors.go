package gateway

import "fmt"

// TransportError is a network-level failure reaching an upstream. It is
// always propagated; missing credentials are the only thing that routes an
// operation to dummy data, never a failed call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamRejection is a non-success response from an upstream. The status
// is preserved so callers can tell bad credentials from server errors.
type UpstreamRejection struct {
	Op      string
	Status  int
	Message string
}

func (e *UpstreamRejection) Error() string {
	return fmt.Sprintf("%s: upstream rejected request with status %d: %s", e.Op, e.Status, e.Message)
}

// NotFoundError reports an analyze call referencing an id absent from the
// known article set.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("article %d not found", e.ID)
}
