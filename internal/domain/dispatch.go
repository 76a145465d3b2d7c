package domain

import "time"

// Scope identifies the org and operator a request acts for. Every store
// query and tool execution is bound to one scope.
type Scope struct {
	OrgID  string `json:"org_id"`
	UserID string `json:"user_id"`
}

// Load represents a freight load.
type Load struct {
	LoadID       string     `json:"load_id"`
	OrgID        string     `json:"org_id"`
	Reference    string     `json:"reference"` // LD-<year>-<4 digits>
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	RateCents    int64      `json:"rate_cents"`
	PickupDate   string     `json:"pickup_date"`   // YYYY-MM-DD
	DeliveryDate string     `json:"delivery_date"` // YYYY-MM-DD
	Shipper      string     `json:"shipper"`
	Equipment    string     `json:"equipment"`
	CustomerRef  string     `json:"customer_ref"`
	Status       LoadStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Driver represents a driver in the org's fleet.
type Driver struct {
	DriverID  string       `json:"driver_id"`
	OrgID     string       `json:"org_id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone,omitempty"`
	License   string       `json:"license,omitempty"`
	Equipment string       `json:"equipment,omitempty"`
	Status    DriverStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Assignment links one driver to one load.
type Assignment struct {
	AssignmentID string    `json:"assignment_id"`
	OrgID        string    `json:"org_id"`
	LoadID       string    `json:"load_id"`
	DriverID     string    `json:"driver_id"`
	AssignedBy   string    `json:"assigned_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoadUpdate carries a partial field set for update_load. Nil means leave
// the column untouched.
type LoadUpdate struct {
	Origin       *string     `json:"origin,omitempty"`
	Destination  *string     `json:"destination,omitempty"`
	RateCents    *int64      `json:"rate_cents,omitempty"`
	PickupDate   *string     `json:"pickup_date,omitempty"`
	DeliveryDate *string     `json:"delivery_date,omitempty"`
	Shipper      *string     `json:"shipper,omitempty"`
	Equipment    *string     `json:"equipment,omitempty"`
	CustomerRef  *string     `json:"customer_ref,omitempty"`
	Status       *LoadStatus `json:"status,omitempty"`
}

// LoadFilter narrows search_loads queries.
type LoadFilter struct {
	Status      LoadStatus
	Origin      string
	Destination string
	Limit       int
}

// DriverFilter narrows search_drivers queries.
type DriverFilter struct {
	Status DriverStatus
	Name   string
	Limit  int
}
