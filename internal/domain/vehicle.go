package domain

import "time"

// Vehicle is a provider-normalized vehicle location record.
type Vehicle struct {
	Provider   Provider  `json:"provider"`
	VehicleID  string    `json:"vehicle_id"`
	Number     string    `json:"number,omitempty"`
	Name       string    `json:"name,omitempty"`
	Plate      string    `json:"plate,omitempty"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	HeadingDeg float64   `json:"heading_deg,omitempty"`
	SpeedMPH   float64   `json:"speed_mph,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
