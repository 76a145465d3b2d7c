package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fleetop/dispatcher/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS loads (
			load_id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			reference TEXT NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			rate_cents INTEGER NOT NULL,
			pickup_date TEXT NOT NULL,
			delivery_date TEXT NOT NULL,
			shipper TEXT NOT NULL,
			equipment TEXT NOT NULL,
			customer_ref TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'AVAILABLE',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_org_reference ON loads(org_id, reference)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_org_status ON loads(org_id, status, created_at)`,
		`CREATE TABLE IF NOT EXISTS drivers (
			driver_id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			license TEXT,
			equipment TEXT,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drivers_org_name ON drivers(org_id, name)`,
		`CREATE TABLE IF NOT EXISTS assignments (
			assignment_id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			load_id TEXT NOT NULL,
			driver_id TEXT NOT NULL,
			assigned_by TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (load_id) REFERENCES loads(load_id),
			FOREIGN KEY (driver_id) REFERENCES drivers(driver_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_org_load ON assignments(org_id, load_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_org ON conversations(org_id, updated_at)`,
		`CREATE TABLE IF NOT EXISTS conversation_messages (
			message_id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			tool_calls TEXT,
			tool_call_id TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_messages_seq ON conversation_messages(conversation_id, seq)`,
		`CREATE TABLE IF NOT EXISTS sim_vehicles (
			vehicle_id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			name TEXT NOT NULL,
			code TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			heading_deg REAL NOT NULL DEFAULT 0,
			speed_mph REAL NOT NULL DEFAULT 0,
			recorded_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sim_vehicles_org ON sim_vehicles(org_id, recorded_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	// Add new columns for existing DBs (SQLite has limited ALTER TABLE support).
	if err := s.ensureColumn("conversations", "mode", "ALTER TABLE conversations ADD COLUMN mode TEXT NOT NULL DEFAULT ''"); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) ensureColumn(tableName, columnName, ddl string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == columnName {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = s.db.Exec(ddl)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const loadColumns = `load_id, org_id, reference, origin, destination, rate_cents, pickup_date, delivery_date, shipper, equipment, customer_ref, status, created_at, updated_at`

func scanLoad(rs rowScanner) (*domain.Load, error) {
	var l domain.Load
	err := rs.Scan(&l.LoadID, &l.OrgID, &l.Reference, &l.Origin, &l.Destination, &l.RateCents,
		&l.PickupDate, &l.DeliveryDate, &l.Shipper, &l.Equipment, &l.CustomerRef, &l.Status,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLoad inserts a new load.
func (s *SQLiteStore) CreateLoad(ctx context.Context, load *domain.Load) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loads (`+loadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		load.LoadID, load.OrgID, load.Reference, load.Origin, load.Destination, load.RateCents,
		load.PickupDate, load.DeliveryDate, load.Shipper, load.Equipment, load.CustomerRef, load.Status,
		load.CreatedAt, load.UpdatedAt)
	return err
}

// GetLoad retrieves a load by ID within an org.
func (s *SQLiteStore) GetLoad(ctx context.Context, orgID, loadID string) (*domain.Load, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+loadColumns+` FROM loads WHERE org_id = ? AND load_id = ?`,
		orgID, loadID)
	load, err := scanLoad(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return load, nil
}

// FindLoadsByReference finds loads whose reference contains the fragment,
// case-insensitively, most recent first. instr avoids LIKE wildcard
// injection from operator-typed text.
func (s *SQLiteStore) FindLoadsByReference(ctx context.Context, orgID, fragment string) ([]domain.Load, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+loadColumns+` FROM loads
		 WHERE org_id = ? AND instr(lower(reference), lower(?)) > 0
		 ORDER BY created_at DESC`,
		orgID, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLoads(rows)
}

// SearchLoads retrieves loads matching the filter, most recent first.
func (s *SQLiteStore) SearchLoads(ctx context.Context, orgID string, filter domain.LoadFilter) ([]domain.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE org_id = ?`
	args := []interface{}{orgID}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Origin != "" {
		query += ` AND instr(lower(origin), lower(?)) > 0`
		args = append(args, filter.Origin)
	}
	if filter.Destination != "" {
		query += ` AND instr(lower(destination), lower(?)) > 0`
		args = append(args, filter.Destination)
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLoads(rows)
}

func collectLoads(rows *sql.Rows) ([]domain.Load, error) {
	var loads []domain.Load
	for rows.Next() {
		load, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, *load)
	}
	return loads, rows.Err()
}

// UpdateLoadFields applies a partial update to a load.
func (s *SQLiteStore) UpdateLoadFields(ctx context.Context, orgID, loadID string, update domain.LoadUpdate) error {
	sets := []string{}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.Origin != nil {
		appendSet("origin", *update.Origin)
	}
	if update.Destination != nil {
		appendSet("destination", *update.Destination)
	}
	if update.RateCents != nil {
		appendSet("rate_cents", *update.RateCents)
	}
	if update.PickupDate != nil {
		appendSet("pickup_date", *update.PickupDate)
	}
	if update.DeliveryDate != nil {
		appendSet("delivery_date", *update.DeliveryDate)
	}
	if update.Shipper != nil {
		appendSet("shipper", *update.Shipper)
	}
	if update.Equipment != nil {
		appendSet("equipment", *update.Equipment)
	}
	if update.CustomerRef != nil {
		appendSet("customer_ref", *update.CustomerRef)
	}
	if update.Status != nil {
		appendSet("status", *update.Status)
	}

	if len(sets) == 0 {
		return nil
	}
	appendSet("updated_at", time.Now())

	query := `UPDATE loads SET ` + strings.Join(sets, ", ") + ` WHERE org_id = ? AND load_id = ?`
	args = append(args, orgID, loadID)

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// UpdateLoadStatus updates the status of a load.
func (s *SQLiteStore) UpdateLoadStatus(ctx context.Context, orgID, loadID string, status domain.LoadStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE loads SET status = ?, updated_at = ? WHERE org_id = ? AND load_id = ?`,
		status, time.Now(), orgID, loadID)
	return err
}

const driverColumns = `driver_id, org_id, name, phone, license, equipment, status, created_at, updated_at`

func scanDriver(rs rowScanner) (*domain.Driver, error) {
	var d domain.Driver
	var phone, license, equipment sql.NullString
	err := rs.Scan(&d.DriverID, &d.OrgID, &d.Name, &phone, &license, &equipment, &d.Status,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		d.Phone = phone.String
	}
	if license.Valid {
		d.License = license.String
	}
	if equipment.Valid {
		d.Equipment = equipment.String
	}
	return &d, nil
}

// CreateDriver inserts a new driver.
func (s *SQLiteStore) CreateDriver(ctx context.Context, driver *domain.Driver) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drivers (`+driverColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		driver.DriverID, driver.OrgID, driver.Name, nullString(driver.Phone), nullString(driver.License),
		nullString(driver.Equipment), driver.Status, driver.CreatedAt, driver.UpdatedAt)
	return err
}

// GetDriver retrieves a driver by ID within an org.
func (s *SQLiteStore) GetDriver(ctx context.Context, orgID, driverID string) (*domain.Driver, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE org_id = ? AND driver_id = ?`,
		orgID, driverID)
	driver, err := scanDriver(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// FindDriversByName finds drivers whose name contains the fragment,
// case-insensitively, most recent first.
func (s *SQLiteStore) FindDriversByName(ctx context.Context, orgID, fragment string) ([]domain.Driver, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+driverColumns+` FROM drivers
		 WHERE org_id = ? AND instr(lower(name), lower(?)) > 0
		 ORDER BY created_at DESC`,
		orgID, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDrivers(rows)
}

// ListDrivers retrieves every driver in an org, most recent first.
func (s *SQLiteStore) ListDrivers(ctx context.Context, orgID string) ([]domain.Driver, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE org_id = ? ORDER BY created_at DESC`,
		orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDrivers(rows)
}

// SearchDrivers retrieves drivers matching the filter, most recent first.
func (s *SQLiteStore) SearchDrivers(ctx context.Context, orgID string, filter domain.DriverFilter) ([]domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE org_id = ?`
	args := []interface{}{orgID}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Name != "" {
		query += ` AND instr(lower(name), lower(?)) > 0`
		args = append(args, filter.Name)
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDrivers(rows)
}

func collectDrivers(rows *sql.Rows) ([]domain.Driver, error) {
	var drivers []domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, *driver)
	}
	return drivers, rows.Err()
}

// UpdateDriverStatus updates the status of a driver.
func (s *SQLiteStore) UpdateDriverStatus(ctx context.Context, orgID, driverID string, status domain.DriverStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE drivers SET status = ?, updated_at = ? WHERE org_id = ? AND driver_id = ?`,
		status, time.Now(), orgID, driverID)
	return err
}

// CreateAssignment inserts a new assignment.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, assignment *domain.Assignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (assignment_id, org_id, load_id, driver_id, assigned_by, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		assignment.AssignmentID, assignment.OrgID, assignment.LoadID, assignment.DriverID,
		assignment.AssignedBy, assignment.CreatedAt)
	return err
}

// GetAssignmentByLoad retrieves the most recent assignment for a load.
func (s *SQLiteStore) GetAssignmentByLoad(ctx context.Context, orgID, loadID string) (*domain.Assignment, error) {
	var a domain.Assignment
	err := s.db.QueryRowContext(ctx,
		`SELECT assignment_id, org_id, load_id, driver_id, assigned_by, created_at
		 FROM assignments WHERE org_id = ? AND load_id = ?
		 ORDER BY created_at DESC LIMIT 1`,
		orgID, loadID).Scan(&a.AssignmentID, &a.OrgID, &a.LoadID, &a.DriverID, &a.AssignedBy, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateConversation inserts a new conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, org_id, user_id, mode, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		conv.ConversationID, conv.OrgID, conv.UserID, conv.Mode, conv.CreatedAt, conv.UpdatedAt)
	return err
}

// GetConversation retrieves a conversation by ID within an org.
func (s *SQLiteStore) GetConversation(ctx context.Context, orgID, conversationID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, org_id, user_id, mode, created_at, updated_at
		 FROM conversations WHERE org_id = ? AND conversation_id = ?`,
		orgID, conversationID).Scan(&conv.ConversationID, &conv.OrgID, &conv.UserID, &conv.Mode,
		&conv.CreatedAt, &conv.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// UpdateConversationMode sets the mode tag of a conversation.
func (s *SQLiteStore) UpdateConversationMode(ctx context.Context, orgID, conversationID string, mode domain.ConversationMode) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET mode = ?, updated_at = ? WHERE org_id = ? AND conversation_id = ?`,
		mode, time.Now(), orgID, conversationID)
	return err
}

// AppendConversationMessage inserts a message with the next sequence number
// and bumps the conversation's updated_at.
func (s *SQLiteStore) AppendConversationMessage(ctx context.Context, msg *domain.ConversationMessage) error {
	toolCalls, err := marshalToolCalls(msg.ToolCalls)
	if err != nil {
		return fmt.Errorf("failed to marshal tool calls: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversation_messages (message_id, conversation_id, seq, role, content, tool_calls, tool_call_id, created_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM conversation_messages WHERE conversation_id = ?), ?, ?, ?, ?, ?)`,
		msg.MessageID, msg.ConversationID, msg.ConversationID, msg.Role, msg.Content,
		toolCalls, nullString(msg.ToolCallID), msg.CreatedAt)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE conversation_id = ?`,
		time.Now(), msg.ConversationID)
	return err
}

// GetConversationMessages retrieves messages in sequence order. A zero limit
// returns the full history. beforeSeq > 0 windows to older messages.
func (s *SQLiteStore) GetConversationMessages(ctx context.Context, orgID, conversationID string, limit int, beforeSeq int) ([]domain.ConversationMessage, error) {
	query := `SELECT m.message_id, m.conversation_id, m.seq, m.role, m.content, m.tool_calls, m.tool_call_id, m.created_at
		 FROM conversation_messages m
		 JOIN conversations c ON c.conversation_id = m.conversation_id
		 WHERE c.org_id = ? AND m.conversation_id = ?`
	args := []interface{}{orgID, conversationID}

	if beforeSeq > 0 {
		query += ` AND m.seq < ?`
		args = append(args, beforeSeq)
	}

	query += ` ORDER BY m.seq ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ConversationMessage
	for rows.Next() {
		var msg domain.ConversationMessage
		var toolCalls, toolCallID sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.ConversationID, &msg.Seq, &msg.Role, &msg.Content,
			&toolCalls, &toolCallID, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if toolCalls.Valid && toolCalls.String != "" {
			calls, err := unmarshalToolCalls(toolCalls.String)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal tool calls for %s: %w", msg.MessageID, err)
			}
			msg.ToolCalls = calls
		}
		if toolCallID.Valid {
			msg.ToolCallID = toolCallID.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// CreateSimVehicle inserts a vehicle row for the simulated provider.
func (s *SQLiteStore) CreateSimVehicle(ctx context.Context, orgID string, v *domain.Vehicle) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sim_vehicles (vehicle_id, org_id, name, code, lat, lon, heading_deg, speed_mph, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VehicleID, orgID, v.Name, v.Number, v.Lat, v.Lon, v.HeadingDeg, v.SpeedMPH, v.RecordedAt)
	return err
}

// FindSimVehicles finds simulated vehicles whose name, code, or ID contains
// the token, case-insensitively, freshest location first.
func (s *SQLiteStore) FindSimVehicles(ctx context.Context, orgID, token string) ([]domain.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT vehicle_id, name, code, lat, lon, heading_deg, speed_mph, recorded_at
		 FROM sim_vehicles
		 WHERE org_id = ? AND (instr(lower(name), lower(?)) > 0 OR instr(lower(code), lower(?)) > 0 OR instr(lower(vehicle_id), lower(?)) > 0)
		 ORDER BY recorded_at DESC`,
		orgID, token, token, token)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.VehicleID, &v.Name, &v.Number, &v.Lat, &v.Lon, &v.HeadingDeg, &v.SpeedMPH, &v.RecordedAt); err != nil {
			return nil, err
		}
		v.Provider = domain.ProviderSimulated
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func marshalToolCalls(calls []domain.ToolCall) (sql.NullString, error) {
	if len(calls) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(calls)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalToolCalls(raw string) ([]domain.ToolCall, error) {
	var calls []domain.ToolCall
	if err := json.Unmarshal([]byte(raw), &calls); err != nil {
		return nil, err
	}
	return calls, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
