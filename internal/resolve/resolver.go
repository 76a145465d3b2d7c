// Package resolve maps human-typed references ("load 4404", "Maria") to
// dispatch records. Resolution is read-only and never fails a request: a
// miss is an outcome, not an error.
package resolve

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/fleetop/dispatcher/internal/domain"
)

// MaxCandidates caps how many candidates an ambiguous resolution surfaces.
const MaxCandidates = 5

// Store is the subset of the backing store the resolver needs.
type Store interface {
	FindLoadsByReference(ctx context.Context, orgID, fragment string) ([]domain.Load, error)
	FindDriversByName(ctx context.Context, orgID, fragment string) ([]domain.Driver, error)
	ListDrivers(ctx context.Context, orgID string) ([]domain.Driver, error)
}

// LoadResolution is the outcome of resolving a load reference.
type LoadResolution struct {
	Outcome    domain.ResolutionOutcome
	Load       *domain.Load
	Candidates []domain.Load
}

// DriverResolution is the outcome of resolving a driver name.
type DriverResolution struct {
	Outcome    domain.ResolutionOutcome
	Driver     *domain.Driver
	Candidates []domain.Driver
}

// Resolver resolves operator-typed references against org-scoped records.
type Resolver struct {
	store Store
}

// New creates a Resolver backed by the given store.
func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveLoad resolves a raw load reference within an org.
//
// Stage 1 matches the trimmed input as a case-insensitive substring of the
// canonical reference. Stage 2 retries with the digits of the input, so
// "load 4404" still finds "LD-2025-4404". Multiple hits resolve uniquely
// only when exactly one reference equals the input; otherwise the caller
// gets the candidates.
func (r *Resolver) ResolveLoad(ctx context.Context, orgID, raw string) (LoadResolution, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LoadResolution{Outcome: domain.ResolutionNotFound}, nil
	}

	matches, err := r.store.FindLoadsByReference(ctx, orgID, trimmed)
	if err != nil {
		return LoadResolution{}, err
	}

	if len(matches) == 0 {
		if digits := stripNonDigits(trimmed); digits != "" && digits != trimmed {
			matches, err = r.store.FindLoadsByReference(ctx, orgID, digits)
			if err != nil {
				return LoadResolution{}, err
			}
		}
	}

	switch len(matches) {
	case 0:
		return LoadResolution{Outcome: domain.ResolutionNotFound}, nil
	case 1:
		return LoadResolution{Outcome: domain.ResolutionUnique, Load: &matches[0]}, nil
	}

	if exact := exactLoad(matches, trimmed); exact != nil {
		return LoadResolution{Outcome: domain.ResolutionUnique, Load: exact}, nil
	}
	return LoadResolution{
		Outcome:    domain.ResolutionAmbiguous,
		Candidates: capLoads(matches),
	}, nil
}

// ResolveDriver resolves a raw driver name within an org. It runs the same
// substring and digit stages as loads (digits cover phone-fragment lookups),
// then falls back to fuzzy-ranking the input against every driver name in
// the org, so "Gonzales" still finds "Maria Gonzalez".
func (r *Resolver) ResolveDriver(ctx context.Context, orgID, raw string) (DriverResolution, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DriverResolution{Outcome: domain.ResolutionNotFound}, nil
	}

	matches, err := r.store.FindDriversByName(ctx, orgID, trimmed)
	if err != nil {
		return DriverResolution{}, err
	}

	if len(matches) == 0 {
		if digits := stripNonDigits(trimmed); digits != "" && digits != trimmed {
			matches, err = r.store.FindDriversByName(ctx, orgID, digits)
			if err != nil {
				return DriverResolution{}, err
			}
		}
	}

	if len(matches) == 0 {
		matches, err = r.fuzzyDrivers(ctx, orgID, trimmed)
		if err != nil {
			return DriverResolution{}, err
		}
	}

	switch len(matches) {
	case 0:
		return DriverResolution{Outcome: domain.ResolutionNotFound}, nil
	case 1:
		return DriverResolution{Outcome: domain.ResolutionUnique, Driver: &matches[0]}, nil
	}

	if exact := exactDriver(matches, trimmed); exact != nil {
		return DriverResolution{Outcome: domain.ResolutionUnique, Driver: exact}, nil
	}
	return DriverResolution{
		Outcome:    domain.ResolutionAmbiguous,
		Candidates: capDrivers(matches),
	}, nil
}

// fuzzyDrivers ranks all org driver names against the input. fuzzy.Find
// returns matches best first, so order is preserved on conversion.
func (r *Resolver) fuzzyDrivers(ctx context.Context, orgID, input string) ([]domain.Driver, error) {
	drivers, err := r.store.ListDrivers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, nil
	}

	targets := make([]string, len(drivers))
	for i, d := range drivers {
		targets[i] = d.Name
	}

	results := fuzzy.Find(input, targets)
	matched := make([]domain.Driver, len(results))
	for i, match := range results {
		matched[i] = drivers[match.Index]
	}
	return matched, nil
}

func exactLoad(matches []domain.Load, input string) *domain.Load {
	var found *domain.Load
	for i := range matches {
		if strings.EqualFold(matches[i].Reference, input) {
			if found != nil {
				return nil
			}
			found = &matches[i]
		}
	}
	return found
}

func exactDriver(matches []domain.Driver, input string) *domain.Driver {
	var found *domain.Driver
	for i := range matches {
		if strings.EqualFold(matches[i].Name, input) {
			if found != nil {
				return nil
			}
			found = &matches[i]
		}
	}
	return found
}

func capLoads(loads []domain.Load) []domain.Load {
	if len(loads) > MaxCandidates {
		return loads[:MaxCandidates]
	}
	return loads
}

func capDrivers(drivers []domain.Driver) []domain.Driver {
	if len(drivers) > MaxCandidates {
		return drivers[:MaxCandidates]
	}
	return drivers
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
