package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		op   string
		want string
	}{
		{"nil", nil, "load products", ""},
		{"not found", ErrNotFound, "load product", "The requested content was not found."},
		{"wrapped not found", fmt.Errorf("find product %q: %w", "x", ErrNotFound), "load product", "The requested content was not found."},
		{"invalid input", ErrInvalidInput, "load product", "The request was invalid."},
		{"transform failure", fmt.Errorf("product %q: %w", "x", ErrTransform), "load product", "The requested content could not be loaded."},
		{"deadline", context.DeadlineExceeded, "load products", msgTimeout},
		{"wrapped deadline", fmt.Errorf("find products: %w", context.DeadlineExceeded), "load products", msgTimeout},
		{"permission", mongo.CommandError{Code: 13, Message: "unauthorized"}, "load products", msgPermissionDenied},
		{"disconnected", mongo.ErrClientDisconnected, "load products", msgUnavailable},
		{"unknown", errors.New("weird internal detail"), "load products", "Failed to load products."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err, tc.op))
		})
	}
}

func TestClassifyNeverLeaksInternals(t *testing.T) {
	raw := errors.New("connection refused 10.0.0.5:27017")
	msg := Classify(raw, "load homepage")
	assert.NotContains(t, msg, "10.0.0.5")
	assert.NotContains(t, msg, "27017")
}
