// Package policy evaluates dispatch guardrails before any mutating tool runs.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.dispatch_policy.decision"),
		rego.Module("dispatch_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the dispatch policy for one tool invocation.
// Input carries: tool, org_id, user_id, args, and for update_load the
// current load_status. Returns decision ("allow" or "block") and a reason.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", "default", nil
	}

	val := results[0].Expressions[0].Value
	obj, ok := val.(map[string]interface{})
	if !ok {
		// A bare string rule is also accepted.
		if s, ok := val.(string); ok {
			return s, "", nil
		}
		return "allow", "unexpected return type", nil
	}

	decision, _ := obj["decision"].(string)
	reason, _ := obj["reason"].(string)
	if decision == "" {
		decision = "allow"
	}
	return decision, reason, nil
}

// DefaultPolicy is the default dispatch policy content.
const DefaultPolicy = `
package dispatch_policy

default decision := {"decision": "allow", "reason": ""}

# A load may not be created with a non-positive rate.
decision := {"decision": "block", "reason": "rate must be a positive amount"} if {
	input.tool == "create_load"
	input.args.rate <= 0
}

# A delivered load's status is final.
decision := {"decision": "block", "reason": "delivered loads cannot change status"} if {
	input.tool == "update_load"
	input.load_status == "DELIVERED"
	input.args.status
}
`
