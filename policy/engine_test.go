package policy

import (
	"context"
	"testing"
)

func TestDefaultPolicyAllows(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool":   "create_load",
		"org_id": "org1",
		"args":   map[string]interface{}{"rate": 2500},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "allow" {
		t.Fatalf("expected allow, got %s", decision)
	}
}

func TestDefaultPolicyBlocksNonPositiveRate(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, reason, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool":   "create_load",
		"org_id": "org1",
		"args":   map[string]interface{}{"rate": 0},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "block" {
		t.Fatalf("expected block, got %s", decision)
	}
	if reason == "" {
		t.Fatalf("expected a reason")
	}
}

func TestDefaultPolicyBlocksDeliveredStatusChange(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool":        "update_load",
		"org_id":      "org1",
		"load_status": "DELIVERED",
		"args":        map[string]interface{}{"status": "AVAILABLE"},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "block" {
		t.Fatalf("expected block, got %s", decision)
	}

	// Non-status updates on a delivered load stay allowed.
	decision, _, err = engine.Evaluate(context.Background(), map[string]interface{}{
		"tool":        "update_load",
		"org_id":      "org1",
		"load_status": "DELIVERED",
		"args":        map[string]interface{}{"customer_ref": "PO-1881"},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "allow" {
		t.Fatalf("expected allow for non-status update, got %s", decision)
	}
}
