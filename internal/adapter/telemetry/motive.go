package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fleetop/dispatcher/internal/domain"
)

// MotiveClient reads vehicle locations from the Motive fleet API.
type MotiveClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMotiveClient creates a new Motive API client.
func NewMotiveClient(baseURL, apiKey string, timeout time.Duration) *MotiveClient {
	return &MotiveClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Provider identifies this source.
func (c *MotiveClient) Provider() domain.Provider {
	return domain.ProviderMotive
}

type motiveLocation struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Bearing   float64   `json:"bearing"`
	SpeedMPH  float64   `json:"speed"`
	LocatedAt time.Time `json:"located_at"`
}

type motiveVehicle struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	Name            string          `json:"name"`
	LicensePlate    string          `json:"license_plate"`
	CurrentLocation *motiveLocation `json:"current_location"`
}

type motiveVehiclesResponse struct {
	Vehicles []motiveVehicle `json:"vehicles"`
}

// FindVehicles fetches the org's vehicle locations and keeps those whose
// number, name, or plate contains the token.
func (c *MotiveClient) FindVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error) {
	endpoint := fmt.Sprintf("%s/v1/vehicle_locations?org_id=%s", c.baseURL, url.QueryEscape(orgID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("motive API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result motiveVehiclesResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var vehicles []domain.Vehicle
	for _, v := range result.Vehicles {
		if v.CurrentLocation == nil {
			continue
		}
		if !containsFold(v.Number, token) && !containsFold(v.Name, token) && !containsFold(v.LicensePlate, token) {
			continue
		}
		vehicles = append(vehicles, domain.Vehicle{
			Provider:   domain.ProviderMotive,
			VehicleID:  v.ID,
			Number:     v.Number,
			Name:       v.Name,
			Plate:      v.LicensePlate,
			Lat:        v.CurrentLocation.Lat,
			Lon:        v.CurrentLocation.Lon,
			HeadingDeg: v.CurrentLocation.Bearing,
			SpeedMPH:   v.CurrentLocation.SpeedMPH,
			RecordedAt: v.CurrentLocation.LocatedAt,
		})
	}
	return vehicles, nil
}
