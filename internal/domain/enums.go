// Package domain defines the core domain models for the dispatcher.
package domain

// LoadStatus represents the lifecycle status of a load.
type LoadStatus string

const (
	LoadStatusAvailable LoadStatus = "AVAILABLE"
	LoadStatusInTransit LoadStatus = "IN_TRANSIT"
	LoadStatusDelivered LoadStatus = "DELIVERED"
	LoadStatusProblem   LoadStatus = "PROBLEM"
)

// DriverStatus represents the availability status of a driver.
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "ACTIVE"
	DriverStatusAssigned DriverStatus = "ASSIGNED"
	DriverStatusInactive DriverStatus = "INACTIVE"
)

// Provider identifies a vehicle location source.
type Provider string

const (
	ProviderMotive      Provider = "motive"
	ProviderTelematicsB Provider = "telematics-b"
	ProviderSimulated   Provider = "simulated"
)

// ResolutionOutcome classifies the result of resolving a human-typed reference.
type ResolutionOutcome string

const (
	ResolutionUnique    ResolutionOutcome = "UNIQUE"
	ResolutionAmbiguous ResolutionOutcome = "AMBIGUOUS"
	ResolutionNotFound  ResolutionOutcome = "NOT_FOUND"
)

// Message roles in a conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ConversationMode tags a conversation with an in-progress flow, e.g. an
// operator supplying create_load fields across several turns.
type ConversationMode string

const (
	ModeNone         ConversationMode = ""
	ModeCreatingLoad ConversationMode = "creating_load"
)
