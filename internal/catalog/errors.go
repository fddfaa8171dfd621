package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors returned by accessors. Handlers branch on these to pick a
// status code; the user-facing message always comes from Classify.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrTransform    = errors.New("document failed validation")
)

// Fixed user-facing strings for known backend failure modes.
const (
	msgPermissionDenied = "You do not have permission to access this content."
	msgUnavailable      = "The service is temporarily unavailable. Please try again."
	msgTimeout          = "The request timed out. Please try again."
)

// mongoUnauthorizedCode is the server error code for permission failures.
const mongoUnauthorizedCode = 13

// Classify maps a raw store error to a user-facing message for the given
// operation. Raw backend internals never reach the caller.
func Classify(err error, op string) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "The requested content was not found."
	case errors.Is(err, ErrInvalidInput):
		return "The request was invalid."
	case errors.Is(err, ErrTransform):
		return "The requested content could not be loaded."
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		return msgTimeout
	case isPermissionDenied(err):
		return msgPermissionDenied
	case mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected):
		return msgUnavailable
	default:
		return "Failed to " + op + "."
	}
}

func isPermissionDenied(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == mongoUnauthorizedCode
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == mongoUnauthorizedCode {
				return true
			}
		}
	}
	return false
}
