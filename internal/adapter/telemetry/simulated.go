package telemetry

import (
	"context"

	"github.com/fleetop/dispatcher/internal/domain"
)

// VehicleFinder is the store subset the simulated source reads.
type VehicleFinder interface {
	FindSimVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error)
}

// SimulatedSource serves vehicle locations from the backing store. It stands
// in for orgs that have no live telematics integration.
type SimulatedSource struct {
	store VehicleFinder
}

// NewSimulatedSource creates a store-backed source.
func NewSimulatedSource(store VehicleFinder) *SimulatedSource {
	return &SimulatedSource{store: store}
}

// Provider identifies this source.
func (s *SimulatedSource) Provider() domain.Provider {
	return domain.ProviderSimulated
}

// FindVehicles returns simulated vehicles matching the token.
func (s *SimulatedSource) FindVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error) {
	return s.store.FindSimVehicles(ctx, orgID, token)
}
