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

// TelematicsBClient reads unit positions from the secondary telematics API.
type TelematicsBClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTelematicsBClient creates a new telematics-b API client.
func NewTelematicsBClient(baseURL, apiKey string, timeout time.Duration) *TelematicsBClient {
	return &TelematicsBClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Provider identifies this source.
func (c *TelematicsBClient) Provider() domain.Provider {
	return domain.ProviderTelematicsB
}

type telematicsBPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Heading   float64 `json:"heading"`
	SpeedMPH  float64 `json:"speed_mph"`
	Timestamp int64   `json:"timestamp"` // Unix seconds
}

type telematicsBUnit struct {
	UnitID   string               `json:"unit_id"`
	Label    string               `json:"label"`
	Plate    string               `json:"plate"`
	Position *telematicsBPosition `json:"position"`
}

type telematicsBUnitsResponse struct {
	Units []telematicsBUnit `json:"units"`
}

// FindVehicles fetches the org's units and keeps those whose label, plate,
// or unit ID contains the token.
func (c *TelematicsBClient) FindVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error) {
	endpoint := fmt.Sprintf("%s/api/units?account=%s", c.baseURL, url.QueryEscape(orgID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
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
		return nil, fmt.Errorf("telematics-b API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result telematicsBUnitsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var vehicles []domain.Vehicle
	for _, u := range result.Units {
		if u.Position == nil {
			continue
		}
		if !containsFold(u.Label, token) && !containsFold(u.Plate, token) && !containsFold(u.UnitID, token) {
			continue
		}
		vehicles = append(vehicles, domain.Vehicle{
			Provider:   domain.ProviderTelematicsB,
			VehicleID:  u.UnitID,
			Name:       u.Label,
			Plate:      u.Plate,
			Lat:        u.Position.Latitude,
			Lon:        u.Position.Longitude,
			HeadingDeg: u.Position.Heading,
			SpeedMPH:   u.Position.SpeedMPH,
			RecordedAt: time.Unix(u.Position.Timestamp, 0),
		})
	}
	return vehicles, nil
}
