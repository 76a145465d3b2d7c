// Package tools implements the fixed catalogue of dispatch operations the
// assistant may invoke. Every execution produces a ToolResult; no Go error
// crosses the boundary back into the orchestration loop.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetop/dispatcher/internal/domain"
	"github.com/fleetop/dispatcher/internal/repository"
	"github.com/fleetop/dispatcher/internal/resolve"
	"github.com/fleetop/dispatcher/policy"
)

// DefaultSearchLimit caps search results when the model does not ask for a
// specific count.
const DefaultSearchLimit = 10

// EntityResolver resolves human-typed references to dispatch records.
type EntityResolver interface {
	ResolveLoad(ctx context.Context, orgID, raw string) (resolve.LoadResolution, error)
	ResolveDriver(ctx context.Context, orgID, raw string) (resolve.DriverResolution, error)
}

// VehicleLocator answers free-text vehicle location queries.
type VehicleLocator interface {
	Locate(ctx context.Context, orgID, rawQuery string) (*domain.Vehicle, error)
}

// Executor runs catalogue operations against the backing store.
type Executor struct {
	store    store.Store
	resolver EntityResolver
	locator  VehicleLocator
	policy   *policy.Engine
}

// NewExecutor creates a tool executor.
func NewExecutor(st store.Store, resolver EntityResolver, locator VehicleLocator, policyEngine *policy.Engine) *Executor {
	return &Executor{
		store:    st,
		resolver: resolver,
		locator:  locator,
		policy:   policyEngine,
	}
}

// Execute runs one tool call and always returns a result. Unknown tools,
// malformed arguments, resolution misses, policy blocks, and store failures
// all come back as error results.
func (e *Executor) Execute(ctx context.Context, scope domain.Scope, call domain.ToolCall) domain.ToolResult {
	switch call.Name {
	case "search_loads":
		return e.searchLoads(ctx, scope, call.Arguments)
	case "search_drivers":
		return e.searchDrivers(ctx, scope, call.Arguments)
	case "create_load":
		return e.createLoad(ctx, scope, call.Arguments)
	case "update_load":
		return e.updateLoad(ctx, scope, call.Arguments)
	case "assign_driver_to_load":
		return e.assignDriverToLoad(ctx, scope, call.Arguments)
	case "get_load_details":
		return e.getLoadDetails(ctx, scope, call.Arguments)
	case "locate_vehicle":
		return e.locateVehicle(ctx, scope, call.Arguments)
	default:
		return domain.ErrorResult(fmt.Sprintf("unknown tool: %s", call.Name))
	}
}

// checkPolicy gates mutating tools. loadStatus is the current status of the
// targeted load where the policy needs it (update_load); empty otherwise.
func (e *Executor) checkPolicy(ctx context.Context, scope domain.Scope, tool string, args json.RawMessage, loadStatus domain.LoadStatus) *domain.ToolResult {
	if e.policy == nil {
		return nil
	}

	input := map[string]interface{}{
		"tool":    tool,
		"org_id":  scope.OrgID,
		"user_id": scope.UserID,
		"args":    map[string]interface{}{},
	}
	var argsMap map[string]interface{}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &argsMap); err == nil {
			input["args"] = argsMap
		}
	}
	if loadStatus != "" {
		input["load_status"] = string(loadStatus)
	}

	decision, reason, err := e.policy.Evaluate(ctx, input)
	if err != nil {
		log.Printf("ERROR: policy evaluation failed for %s: %v", tool, err)
		res := domain.ErrorResult("the request could not be checked against dispatch policy")
		return &res
	}
	if decision == "block" {
		if reason == "" {
			reason = "blocked by dispatch policy"
		}
		res := domain.ErrorResult(reason)
		return &res
	}
	return nil
}

type searchLoadsArgs struct {
	Status      string `json:"status"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Limit       int    `json:"limit"`
}

func (e *Executor) searchLoads(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args searchLoadsArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for search_loads")
	}
	if args.Status != "" && !validLoadStatus(domain.LoadStatus(args.Status)) {
		return domain.ErrorResult(fmt.Sprintf("invalid load status: %s", args.Status))
	}

	filter := domain.LoadFilter{
		Status:      domain.LoadStatus(args.Status),
		Origin:      args.Origin,
		Destination: args.Destination,
		Limit:       clampLimit(args.Limit),
	}
	loads, err := e.store.SearchLoads(ctx, scope.OrgID, filter)
	if err != nil {
		log.Printf("ERROR: search_loads failed: %v", err)
		return domain.ErrorResult("could not search loads right now")
	}

	return domain.SuccessResult(map[string]interface{}{
		"loads": loadSummaries(loads),
		"count": len(loads),
	})
}

type searchDriversArgs struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Limit  int    `json:"limit"`
}

func (e *Executor) searchDrivers(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args searchDriversArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for search_drivers")
	}
	if args.Status != "" && !validDriverStatus(domain.DriverStatus(args.Status)) {
		return domain.ErrorResult(fmt.Sprintf("invalid driver status: %s", args.Status))
	}

	filter := domain.DriverFilter{
		Status: domain.DriverStatus(args.Status),
		Name:   args.Name,
		Limit:  clampLimit(args.Limit),
	}
	drivers, err := e.store.SearchDrivers(ctx, scope.OrgID, filter)
	if err != nil {
		log.Printf("ERROR: search_drivers failed: %v", err)
		return domain.ErrorResult("could not search drivers right now")
	}

	return domain.SuccessResult(map[string]interface{}{
		"drivers": driverSummaries(drivers),
		"count":   len(drivers),
	})
}

type createLoadArgs struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	Rate         *float64 `json:"rate"`
	PickupDate   string   `json:"pickup_date"`
	DeliveryDate string   `json:"delivery_date"`
	Shipper      string   `json:"shipper"`
	Equipment    string   `json:"equipment"`
	CustomerRef  string   `json:"customer_ref"`
}

func (a createLoadArgs) missingFields() []string {
	var missing []string
	add := func(field string, empty bool) {
		if empty {
			missing = append(missing, field)
		}
	}
	add("origin", a.Origin == "")
	add("destination", a.Destination == "")
	add("rate", a.Rate == nil)
	add("pickup_date", a.PickupDate == "")
	add("delivery_date", a.DeliveryDate == "")
	add("shipper", a.Shipper == "")
	add("equipment", a.Equipment == "")
	add("customer_ref", a.CustomerRef == "")
	return missing
}

func (e *Executor) createLoad(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args createLoadArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for create_load")
	}
	if missing := args.missingFields(); len(missing) > 0 {
		return domain.MissingFieldsResult(missing...)
	}

	if res := e.checkPolicy(ctx, scope, "create_load", raw, ""); res != nil {
		return *res
	}

	now := time.Now()
	load := &domain.Load{
		LoadID:       "load_" + uuid.New().String()[:8],
		OrgID:        scope.OrgID,
		Reference:    newLoadReference(now),
		Origin:       args.Origin,
		Destination:  args.Destination,
		RateCents:    int64(*args.Rate*100 + 0.5),
		PickupDate:   args.PickupDate,
		DeliveryDate: args.DeliveryDate,
		Shipper:      args.Shipper,
		Equipment:    args.Equipment,
		CustomerRef:  args.CustomerRef,
		Status:       domain.LoadStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.store.CreateLoad(ctx, load); err != nil {
		log.Printf("ERROR: create_load failed: %v", err)
		return domain.ErrorResult("could not create the load right now")
	}

	return domain.SuccessResult(map[string]interface{}{
		"load": loadSummary(*load),
	})
}

type updateLoadArgs struct {
	LoadReference string   `json:"load_reference"`
	Rate          *float64 `json:"rate"`
	domain.LoadUpdate
}

func (e *Executor) updateLoad(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args updateLoadArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for update_load")
	}
	if args.LoadReference == "" {
		return domain.MissingFieldsResult("load_reference")
	}
	if args.Status != nil && !validLoadStatus(*args.Status) {
		return domain.ErrorResult(fmt.Sprintf("invalid load status: %s", *args.Status))
	}
	if args.Rate != nil {
		cents := int64(*args.Rate*100 + 0.5)
		args.LoadUpdate.RateCents = &cents
	}

	res, err := e.resolver.ResolveLoad(ctx, scope.OrgID, args.LoadReference)
	if err != nil {
		log.Printf("ERROR: load resolution failed: %v", err)
		return domain.ErrorResult("could not look up the load right now")
	}
	switch res.Outcome {
	case domain.ResolutionNotFound:
		return domain.ErrorResult(fmt.Sprintf("no load matching %q was found", args.LoadReference))
	case domain.ResolutionAmbiguous:
		return domain.ErrorResult(ambiguousLoadMessage(args.LoadReference, res.Candidates))
	}

	if blocked := e.checkPolicy(ctx, scope, "update_load", raw, res.Load.Status); blocked != nil {
		return *blocked
	}

	if err := e.store.UpdateLoadFields(ctx, scope.OrgID, res.Load.LoadID, args.LoadUpdate); err != nil {
		log.Printf("ERROR: update_load failed for %s: %v", res.Load.LoadID, err)
		return domain.ErrorResult("could not update the load right now")
	}

	updated, err := e.store.GetLoad(ctx, scope.OrgID, res.Load.LoadID)
	if err != nil || updated == nil {
		log.Printf("WARN: failed to re-read load %s after update: %v", res.Load.LoadID, err)
		updated = res.Load
	}
	return domain.SuccessResult(map[string]interface{}{
		"load": loadSummary(*updated),
	})
}

type assignArgs struct {
	DriverName    string `json:"driver_name"`
	LoadReference string `json:"load_reference"`
}

// assignDriverToLoad is a three-step write (assignment row, driver status,
// load status) with no rollback on partial failure. Steps are ordered so the
// driver is locked out immediately after the assignment row exists.
func (e *Executor) assignDriverToLoad(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args assignArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for assign_driver_to_load")
	}
	var missing []string
	if args.DriverName == "" {
		missing = append(missing, "driver_name")
	}
	if args.LoadReference == "" {
		missing = append(missing, "load_reference")
	}
	if len(missing) > 0 {
		return domain.MissingFieldsResult(missing...)
	}

	driverRes, err := e.resolver.ResolveDriver(ctx, scope.OrgID, args.DriverName)
	if err != nil {
		log.Printf("ERROR: driver resolution failed: %v", err)
		return domain.ErrorResult("could not look up the driver right now")
	}
	switch driverRes.Outcome {
	case domain.ResolutionNotFound:
		return domain.ErrorResult(fmt.Sprintf("no driver matching %q was found", args.DriverName))
	case domain.ResolutionAmbiguous:
		return domain.ErrorResult(ambiguousDriverMessage(args.DriverName, driverRes.Candidates))
	}

	loadRes, err := e.resolver.ResolveLoad(ctx, scope.OrgID, args.LoadReference)
	if err != nil {
		log.Printf("ERROR: load resolution failed: %v", err)
		return domain.ErrorResult("could not look up the load right now")
	}
	switch loadRes.Outcome {
	case domain.ResolutionNotFound:
		return domain.ErrorResult(fmt.Sprintf("no load matching %q was found", args.LoadReference))
	case domain.ResolutionAmbiguous:
		return domain.ErrorResult(ambiguousLoadMessage(args.LoadReference, loadRes.Candidates))
	}

	driver, load := driverRes.Driver, loadRes.Load
	if driver.Status == domain.DriverStatusAssigned {
		return domain.ErrorResult(fmt.Sprintf("%s is already assigned to another load", driver.Name))
	}

	if blocked := e.checkPolicy(ctx, scope, "assign_driver_to_load", raw, load.Status); blocked != nil {
		return *blocked
	}

	assignment := &domain.Assignment{
		AssignmentID: "asg_" + uuid.New().String()[:8],
		OrgID:        scope.OrgID,
		LoadID:       load.LoadID,
		DriverID:     driver.DriverID,
		AssignedBy:   scope.UserID,
		CreatedAt:    time.Now(),
	}
	if err := e.store.CreateAssignment(ctx, assignment); err != nil {
		log.Printf("ERROR: failed to create assignment: %v", err)
		return domain.ErrorResult("could not create the assignment right now")
	}

	if err := e.store.UpdateDriverStatus(ctx, scope.OrgID, driver.DriverID, domain.DriverStatusAssigned); err != nil {
		log.Printf("ERROR: assignment %s created but driver status update failed: %v", assignment.AssignmentID, err)
		return domain.ErrorResult("the assignment was recorded but the driver's status could not be updated")
	}

	loadStatus := load.Status
	if load.Status == domain.LoadStatusAvailable {
		if err := e.store.UpdateLoadStatus(ctx, scope.OrgID, load.LoadID, domain.LoadStatusInTransit); err != nil {
			log.Printf("ERROR: assignment %s created but load status update failed: %v", assignment.AssignmentID, err)
			return domain.ErrorResult("the driver was assigned but the load's status could not be updated")
		}
		loadStatus = domain.LoadStatusInTransit
	}

	return domain.SuccessResult(map[string]interface{}{
		"assignment_id":  assignment.AssignmentID,
		"driver_name":    driver.Name,
		"load_reference": load.Reference,
		"load_status":    loadStatus,
	})
}

type getLoadDetailsArgs struct {
	LoadReference string `json:"load_reference"`
}

func (e *Executor) getLoadDetails(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args getLoadDetailsArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for get_load_details")
	}
	if args.LoadReference == "" {
		return domain.MissingFieldsResult("load_reference")
	}

	res, err := e.resolver.ResolveLoad(ctx, scope.OrgID, args.LoadReference)
	if err != nil {
		log.Printf("ERROR: load resolution failed: %v", err)
		return domain.ErrorResult("could not look up the load right now")
	}
	switch res.Outcome {
	case domain.ResolutionNotFound:
		return domain.ErrorResult(fmt.Sprintf("no load matching %q was found", args.LoadReference))
	case domain.ResolutionAmbiguous:
		return domain.ErrorResult(ambiguousLoadMessage(args.LoadReference, res.Candidates))
	}

	payload := map[string]interface{}{
		"load": loadSummary(*res.Load),
	}

	assignment, err := e.store.GetAssignmentByLoad(ctx, scope.OrgID, res.Load.LoadID)
	if err != nil {
		log.Printf("WARN: failed to read assignment for load %s: %v", res.Load.LoadID, err)
	}
	if assignment != nil {
		payload["assignment_id"] = assignment.AssignmentID
		driver, err := e.store.GetDriver(ctx, scope.OrgID, assignment.DriverID)
		if err != nil {
			log.Printf("WARN: failed to read driver %s: %v", assignment.DriverID, err)
		}
		if driver != nil {
			payload["driver"] = driverSummary(*driver)
		}
	}

	return domain.SuccessResult(payload)
}

type locateVehicleArgs struct {
	Query string `json:"query"`
}

func (e *Executor) locateVehicle(ctx context.Context, scope domain.Scope, raw json.RawMessage) domain.ToolResult {
	var args locateVehicleArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return domain.ErrorResult("invalid arguments for locate_vehicle")
	}
	if args.Query == "" {
		return domain.MissingFieldsResult("query")
	}

	vehicle, err := e.locator.Locate(ctx, scope.OrgID, args.Query)
	if err != nil {
		log.Printf("ERROR: locate_vehicle failed: %v", err)
		return domain.ErrorResult("could not reach the vehicle location providers right now")
	}
	if vehicle == nil {
		return domain.ErrorResult(fmt.Sprintf("no vehicle matching %q was found", args.Query))
	}

	return domain.SuccessResult(map[string]interface{}{
		"vehicle": vehicle,
	})
}

func unmarshalArgs(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// newLoadReference generates a human-readable reference. The 4-digit space is
// not collision-checked; it is large relative to expected volume.
func newLoadReference(now time.Time) string {
	return fmt.Sprintf("LD-%d-%04d", now.Year(), rand.Intn(10000))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultSearchLimit {
		return DefaultSearchLimit
	}
	return limit
}

func validLoadStatus(s domain.LoadStatus) bool {
	switch s {
	case domain.LoadStatusAvailable, domain.LoadStatusInTransit, domain.LoadStatusDelivered, domain.LoadStatusProblem:
		return true
	}
	return false
}

func validDriverStatus(s domain.DriverStatus) bool {
	switch s {
	case domain.DriverStatusActive, domain.DriverStatusAssigned, domain.DriverStatusInactive:
		return true
	}
	return false
}

func ambiguousLoadMessage(input string, candidates []domain.Load) string {
	refs := make([]string, len(candidates))
	for i, l := range candidates {
		refs[i] = l.Reference
	}
	return fmt.Sprintf("%q matches several loads (%s); ask the operator which one they mean", input, strings.Join(refs, ", "))
}

func ambiguousDriverMessage(input string, candidates []domain.Driver) string {
	names := make([]string, len(candidates))
	for i, d := range candidates {
		names[i] = d.Name
	}
	return fmt.Sprintf("%q matches several drivers (%s); ask the operator which one they mean", input, strings.Join(names, ", "))
}

func loadSummary(l domain.Load) map[string]interface{} {
	return map[string]interface{}{
		"load_id":       l.LoadID,
		"reference":     l.Reference,
		"origin":        l.Origin,
		"destination":   l.Destination,
		"rate":          float64(l.RateCents) / 100,
		"pickup_date":   l.PickupDate,
		"delivery_date": l.DeliveryDate,
		"shipper":       l.Shipper,
		"equipment":     l.Equipment,
		"customer_ref":  l.CustomerRef,
		"status":        l.Status,
	}
}

func loadSummaries(loads []domain.Load) []map[string]interface{} {
	out := make([]map[string]interface{}, len(loads))
	for i, l := range loads {
		out[i] = loadSummary(l)
	}
	return out
}

func driverSummary(d domain.Driver) map[string]interface{} {
	return map[string]interface{}{
		"driver_id": d.DriverID,
		"name":      d.Name,
		"phone":     d.Phone,
		"equipment": d.Equipment,
		"status":    d.Status,
	}
}

func driverSummaries(drivers []domain.Driver) []map[string]interface{} {
	out := make([]map[string]interface{}, len(drivers))
	for i, d := range drivers {
		out[i] = driverSummary(d)
	}
	return out
}
