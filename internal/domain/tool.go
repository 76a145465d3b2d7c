package domain

import (
	"encoding/json"
	"strings"
)

// ToolResult is the outcome of executing one tool call. A result is always
// produced, even when the tool fails internally; Err carries the operator-safe
// failure text and Payload carries the success body. MissingFields is set when
// the failure is specifically an incomplete argument set, so callers can react
// to that case without parsing Err.
type ToolResult struct {
	Success       bool
	Payload       map[string]interface{}
	Err           string
	MissingFields []string
}

// SuccessResult builds a successful ToolResult.
func SuccessResult(payload map[string]interface{}) ToolResult {
	return ToolResult{Success: true, Payload: payload}
}

// ErrorResult builds a failed ToolResult with an operator-safe message.
func ErrorResult(msg string) ToolResult {
	return ToolResult{Err: msg}
}

// MissingFieldsResult builds a failed ToolResult for an incomplete argument
// set, recording which required fields were absent.
func MissingFieldsResult(fields ...string) ToolResult {
	return ToolResult{
		Err:           "missing required fields: " + strings.Join(fields, ", "),
		MissingFields: fields,
	}
}

// MarshalJSON renders the wire shape fed back to the model:
// {"success":true, ...payload} or {"error":"..."}.
func (r ToolResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(map[string]string{"error": r.Err})
	}
	body := make(map[string]interface{}, len(r.Payload)+1)
	for k, v := range r.Payload {
		body[k] = v
	}
	body["success"] = true
	return json.Marshal(body)
}
