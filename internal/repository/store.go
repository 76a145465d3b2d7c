package store

import (
	"context"

	"github.com/fleetop/dispatcher/internal/domain"
)

// Store defines the persistence operations used by the dispatcher. All
// queries are org-scoped; implementations must never return rows belonging
// to another org.
type Store interface {
	// Load operations
	CreateLoad(ctx context.Context, load *domain.Load) error
	GetLoad(ctx context.Context, orgID, loadID string) (*domain.Load, error)
	FindLoadsByReference(ctx context.Context, orgID, fragment string) ([]domain.Load, error)
	SearchLoads(ctx context.Context, orgID string, filter domain.LoadFilter) ([]domain.Load, error)
	UpdateLoadFields(ctx context.Context, orgID, loadID string, update domain.LoadUpdate) error
	UpdateLoadStatus(ctx context.Context, orgID, loadID string, status domain.LoadStatus) error

	// Driver operations
	CreateDriver(ctx context.Context, driver *domain.Driver) error
	GetDriver(ctx context.Context, orgID, driverID string) (*domain.Driver, error)
	FindDriversByName(ctx context.Context, orgID, fragment string) ([]domain.Driver, error)
	ListDrivers(ctx context.Context, orgID string) ([]domain.Driver, error)
	SearchDrivers(ctx context.Context, orgID string, filter domain.DriverFilter) ([]domain.Driver, error)
	UpdateDriverStatus(ctx context.Context, orgID, driverID string, status domain.DriverStatus) error

	// Assignment operations
	CreateAssignment(ctx context.Context, assignment *domain.Assignment) error
	GetAssignmentByLoad(ctx context.Context, orgID, loadID string) (*domain.Assignment, error)

	// Conversation operations
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversation(ctx context.Context, orgID, conversationID string) (*domain.Conversation, error)
	UpdateConversationMode(ctx context.Context, orgID, conversationID string, mode domain.ConversationMode) error
	AppendConversationMessage(ctx context.Context, msg *domain.ConversationMessage) error
	GetConversationMessages(ctx context.Context, orgID, conversationID string, limit int, beforeSeq int) ([]domain.ConversationMessage, error)

	// Simulated vehicle operations
	CreateSimVehicle(ctx context.Context, orgID string, v *domain.Vehicle) error
	FindSimVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
