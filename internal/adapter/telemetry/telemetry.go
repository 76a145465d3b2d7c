// Package telemetry provides vehicle location sources. Each source wraps one
// provider and normalizes its records into domain.Vehicle.
package telemetry

import (
	"context"
	"strings"

	"github.com/fleetop/dispatcher/internal/domain"
)

// Source is implemented by every vehicle location provider.
type Source interface {
	// Provider identifies the source for priority merging.
	Provider() domain.Provider

	// FindVehicles returns the org's vehicles matching the identifier token.
	// An empty result is a miss, not an error.
	FindVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
