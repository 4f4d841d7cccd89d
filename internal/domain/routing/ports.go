package routing

import (
	"context"
	"fmt"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

// RouteProvider resolves a drivable route between two locations.
type RouteProvider interface {
	GetRoute(ctx context.Context, from, to shared.Location) (*Route, error)
}

// RouteCache stores canonical routes keyed by their endpoints. Implementations
// decide staleness; a miss is (nil, false, nil).
type RouteCache interface {
	Get(ctx context.Context, key string) (*Route, bool, error)
	Put(ctx context.Context, key string, route *Route) error
}

// CacheKey identifies a route request by its endpoints, rounded so that
// jittery coordinates from the same place share an entry.
func CacheKey(from, to shared.Location) string {
	return fmt.Sprintf("%.4f,%.4f;%.4f,%.4f", from.Lat, from.Lon, to.Lat, to.Lon)
}

// ErrorKind classifies route resolution failures.
type ErrorKind int

const (
	// ErrKindUnreachable: the upstream answered but returned no route.
	ErrKindUnreachable ErrorKind = iota
	// ErrKindTransport: network failure, timeout, or a non-OK HTTP status.
	ErrKindTransport
	// ErrKindMalformed: the upstream response could not be parsed.
	ErrKindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindUnreachable:
		return "unreachable"
	case ErrKindTransport:
		return "transport"
	case ErrKindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// RouteError is the error type surfaced by RouteProvider implementations.
type RouteError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RouteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

func NewUnreachableError(message string) *RouteError {
	return &RouteError{Kind: ErrKindUnreachable, Message: message}
}

func NewTransportError(message string, err error) *RouteError {
	return &RouteError{Kind: ErrKindTransport, Message: message, Err: err}
}

func NewMalformedError(message string, err error) *RouteError {
	return &RouteError{Kind: ErrKindMalformed, Message: message, Err: err}
}
