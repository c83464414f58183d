package asr

import "fmt"

// TransportError means the backend could not be reached at all
// (connection refused, DNS failure, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError means the backend answered with a non-success status.
type ServiceError struct {
	StatusCode int
	Body       []byte
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// DecodeError means the response body was not the expected JSON shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode backend response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
