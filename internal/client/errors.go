package client

import "fmt"

type ErrorKind string

const (
	KindUnreachable ErrorKind = "unreachable"
	KindNotFound    ErrorKind = "not_found"
	KindMalformed   ErrorKind = "malformed"
)

// EnrichmentError classifies a failed lookup against an upstream service.
type EnrichmentError struct {
	Service string
	Kind    ErrorKind
	Err     error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("%s lookup failed (%s): %v", e.Service, e.Kind, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}
