package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fleetop/dispatcher/internal/domain"
)

func TestMotiveClientFiltersByToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/vehicle_locations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("org_id") != "org1" {
			t.Fatalf("missing org_id, got %q", r.URL.Query().Get("org_id"))
		}
		if r.Header.Get("Authorization") != "Bearer key-1" {
			t.Fatalf("missing bearer auth")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"vehicles":[
			{"id":"v1","number":"982","name":"Truck 982","license_plate":"TX-4821","current_location":{"lat":32.78,"lon":-96.8,"bearing":90,"speed":61,"located_at":"2025-03-10T15:04:05Z"}},
			{"id":"v2","number":"411","name":"Truck 411","license_plate":"TX-9090","current_location":{"lat":30.26,"lon":-97.74,"bearing":180,"speed":55,"located_at":"2025-03-10T15:00:00Z"}},
			{"id":"v3","number":"983","name":"Yard mule","license_plate":"","current_location":null}
		]}`)
	}))
	defer server.Close()

	client := NewMotiveClient(server.URL, "key-1", time.Second)
	vehicles, err := client.FindVehicles(context.Background(), "org1", "982")
	if err != nil {
		t.Fatalf("FindVehicles failed: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(vehicles))
	}
	v := vehicles[0]
	if v.Provider != domain.ProviderMotive || v.VehicleID != "v1" || v.Number != "982" {
		t.Fatalf("unexpected vehicle: %+v", v)
	}
	if v.Lat != 32.78 || v.SpeedMPH != 61 {
		t.Fatalf("location not normalized: %+v", v)
	}
}

func TestMotiveClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewMotiveClient(server.URL, "key-1", time.Second)
	_, err := client.FindVehicles(context.Background(), "org1", "982")
	if err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestTelematicsBClientFiltersByToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/units" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "key-2" {
			t.Fatalf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"units":[
			{"unit_id":"u7","label":"Unit 982","plate":"GA-1001","position":{"latitude":33.75,"longitude":-84.39,"heading":270,"speed_mph":0,"timestamp":1741618800}},
			{"unit_id":"u8","label":"Unit 500","plate":"GA-1002","position":{"latitude":33.64,"longitude":-84.42,"heading":0,"speed_mph":35,"timestamp":1741618800}}
		]}`)
	}))
	defer server.Close()

	client := NewTelematicsBClient(server.URL, "key-2", time.Second)
	vehicles, err := client.FindVehicles(context.Background(), "org1", "982")
	if err != nil {
		t.Fatalf("FindVehicles failed: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(vehicles))
	}
	v := vehicles[0]
	if v.Provider != domain.ProviderTelematicsB || v.VehicleID != "u7" {
		t.Fatalf("unexpected vehicle: %+v", v)
	}
	if !v.RecordedAt.Equal(time.Unix(1741618800, 0)) {
		t.Fatalf("timestamp not normalized: %v", v.RecordedAt)
	}
}

func TestTelematicsBClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewTelematicsBClient(server.URL, "key-2", time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FindVehicles(ctx, "org1", "982")
	if err == nil {
		t.Fatalf("expected deadline error")
	}
}
