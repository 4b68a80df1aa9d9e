package musicstats

import (
	"errors"
	"fmt"
)

// Resource names one of the content API endpoints.
type Resource string

const (
	ResourceSongPlay Resource = "songplay"
	ResourceStation  Resource = "station"
	ResourceEPG      Resource = "epg-current"
	ResourceLiners   Resource = "liners"
)

var (
	ErrNoResults = errors.New("no results in response")
	ErrNoLiners  = errors.New("no liners in response")
	ErrNotObject = errors.New("response is not a JSON object")
)

// HTTPError is returned when the content API answers with anything but 200.
type HTTPError struct {
	Resource   Resource
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("musicstats %s: HTTP error code %d encountered", e.Resource, e.StatusCode)
}

// TransportError is returned when the request never produced a response.
type TransportError struct {
	Resource Resource
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("musicstats %s: request failed: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeError is returned when a 200 response cannot be used: the body is not
// JSON or does not look like the resource.
type ShapeError struct {
	Resource Resource
	Body     string
	Err      error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("musicstats %s: odd response: %v", e.Resource, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
