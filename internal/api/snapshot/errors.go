package snapshot

import (
	"errors"
	"fmt"
)

// ErrBodyTooLarge is wrapped in a ParseError when the response exceeds the
// client's MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// FetchError means the snapshot could not be retrieved: the transport failed
// (Status is 0) or the server answered with a non-2xx status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the response body was not valid JSON or was too large to read.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OriginRestriction is returned before any request is made when the snapshot
// location is not served over HTTP.
type OriginRestriction struct {
	URL string
}

func (e *OriginRestriction) Error() string {
	return fmt.Sprintf("snapshot %s is not served over http(s)", e.URL)
}
