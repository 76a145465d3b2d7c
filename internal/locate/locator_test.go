package locate

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fleetop/dispatcher/internal/domain"
)

type stubSource struct {
	provider domain.Provider
	vehicles []domain.Vehicle
	err      error
	delay    time.Duration
	calls    atomic.Int32
}

func (s *stubSource) Provider() domain.Provider {
	return s.provider
}

func (s *stubSource) FindVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.vehicles, nil
}

func vehicleFor(provider domain.Provider, id string, recordedAt time.Time) domain.Vehicle {
	return domain.Vehicle{
		Provider:   provider,
		VehicleID:  id,
		Number:     "982",
		Lat:        32.78,
		Lon:        -96.80,
		RecordedAt: recordedAt,
	}
}

func TestExtractQueryToken(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"where is truck 982", "982"},
		{"Where is Truck #982?", "982"},
		{"locate unit TR-55", "TR-55"},
		{"find trailer 7731 now", "7731"},
		{"where is my tractor A17", "A17"},
		{"where is TR-982?", "TR-982"},
		{"where is 982", "982"},
		{"where is maple", "maple"},
		{"", ""},
		{"?!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			if got := ExtractQueryToken(tc.query); got != tc.want {
				t.Fatalf("ExtractQueryToken(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestLocatePrefersLiveProvider(t *testing.T) {
	now := time.Now()
	motive := &stubSource{provider: domain.ProviderMotive, vehicles: []domain.Vehicle{vehicleFor(domain.ProviderMotive, "live", now.Add(-time.Hour))}}
	sim := &stubSource{provider: domain.ProviderSimulated, vehicles: []domain.Vehicle{vehicleFor(domain.ProviderSimulated, "sim", now)}}

	l := New(time.Second, motive, sim)
	v, err := l.Locate(context.Background(), "org1", "where is truck 982")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if v == nil || v.VehicleID != "live" {
		t.Fatalf("expected live vehicle despite staler timestamp, got %+v", v)
	}
	// Every source is asked even when a higher-priority one answers.
	if motive.calls.Load() != 1 || sim.calls.Load() != 1 {
		t.Fatalf("expected all sources queried, got motive=%d sim=%d", motive.calls.Load(), sim.calls.Load())
	}
}

func TestLocateFreshestWinsWithinProvider(t *testing.T) {
	now := time.Now()
	motive := &stubSource{provider: domain.ProviderMotive, vehicles: []domain.Vehicle{
		vehicleFor(domain.ProviderMotive, "stale", now.Add(-2*time.Hour)),
		vehicleFor(domain.ProviderMotive, "fresh", now),
	}}

	l := New(time.Second, motive)
	v, err := l.Locate(context.Background(), "org1", "truck 982")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if v == nil || v.VehicleID != "fresh" {
		t.Fatalf("expected freshest vehicle, got %+v", v)
	}
}

func TestLocateProviderErrorDegradesToMiss(t *testing.T) {
	now := time.Now()
	motive := &stubSource{provider: domain.ProviderMotive, err: fmt.Errorf("connection refused")}
	telematics := &stubSource{provider: domain.ProviderTelematicsB, vehicles: []domain.Vehicle{vehicleFor(domain.ProviderTelematicsB, "u7", now)}}

	l := New(time.Second, motive, telematics)
	v, err := l.Locate(context.Background(), "org1", "truck 982")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if v == nil || v.VehicleID != "u7" {
		t.Fatalf("expected fallback to telematics-b, got %+v", v)
	}
}

func TestLocateStalledProviderIsBounded(t *testing.T) {
	now := time.Now()
	stalled := &stubSource{provider: domain.ProviderMotive, delay: 5 * time.Second}
	sim := &stubSource{provider: domain.ProviderSimulated, vehicles: []domain.Vehicle{vehicleFor(domain.ProviderSimulated, "sim", now)}}

	l := New(50*time.Millisecond, stalled, sim)
	start := time.Now()
	v, err := l.Locate(context.Background(), "org1", "truck 982")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("lookup not bounded by per-call timeout, took %v", elapsed)
	}
	if v == nil || v.VehicleID != "sim" {
		t.Fatalf("expected simulated fallback, got %+v", v)
	}
}

func TestLocateNoMatch(t *testing.T) {
	motive := &stubSource{provider: domain.ProviderMotive}

	l := New(time.Second, motive)
	v, err := l.Locate(context.Background(), "org1", "truck 9999")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil vehicle, got %+v", v)
	}
}
