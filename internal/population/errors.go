package population

import (
	"errors"
	"fmt"
)

// ErrNoData is matched by NoDataError via errors.Is.
var ErrNoData = errors.New("no population data")

// APIError represents a failed call to the population API.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		if e.RequestID != "" {
			return fmt.Sprintf("api error: status=%d request_id=%s message=%s", e.StatusCode, e.RequestID, e.Message)
		}
		return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("api error: status=%d request_id=%s", e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("api error: status=%d", e.StatusCode)
}

// CityNotFoundError indicates the API does not know the requested city.
type CityNotFoundError struct {
	*APIError
	City string
}

func (e *CityNotFoundError) Error() string {
	return fmt.Sprintf("city %q not found: %s", e.City, e.APIError.Error())
}

// BadRequestError is any other 4xx: the API rejected the city query itself.
type BadRequestError struct{ *APIError }

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("population query rejected: %s", e.APIError.Error())
}

// ServerError is a 5xx from countriesnow.space.
type ServerError struct{ *APIError }

func (e *ServerError) Error() string {
	return fmt.Sprintf("population service failed: %s", e.APIError.Error())
}

// UnreachableError means no connection to the population service was made
// (dial or DNS failure). Err holds the transport error.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("cannot reach population service %s: %v", e.Host, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// NoDataError indicates a successful response without populationCounts.
type NoDataError struct {
	City      string
	RequestID string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no population data found for %q", e.City)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoData }
