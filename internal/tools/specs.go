package tools

import "github.com/fleetop/dispatcher/internal/adapter/llm"

// Specs returns the fixed tool catalogue in the completion service's wire
// shape. The catalogue never changes at runtime.
func Specs() []llm.Tool {
	return []llm.Tool{
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "search_loads",
				Description: "Search the organization's loads. All filters are optional.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"status": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"AVAILABLE", "IN_TRANSIT", "DELIVERED", "PROBLEM"},
							"description": "Filter by load status.",
						},
						"origin": map[string]interface{}{
							"type":        "string",
							"description": "Filter by origin city or state, substring match.",
						},
						"destination": map[string]interface{}{
							"type":        "string",
							"description": "Filter by destination city or state, substring match.",
						},
						"limit": map[string]interface{}{
							"type":        "integer",
							"description": "Maximum results, up to 10.",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "search_drivers",
				Description: "Search the organization's drivers. All filters are optional.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"status": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"ACTIVE", "ASSIGNED", "INACTIVE"},
							"description": "Filter by driver status.",
						},
						"name": map[string]interface{}{
							"type":        "string",
							"description": "Filter by driver name, substring match.",
						},
						"limit": map[string]interface{}{
							"type":        "integer",
							"description": "Maximum results, up to 10.",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "create_load",
				Description: "Create a new load. All fields are required; ask the operator for any that are missing.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"origin":        map[string]interface{}{"type": "string", "description": "Pickup city and state."},
						"destination":   map[string]interface{}{"type": "string", "description": "Delivery city and state."},
						"rate":          map[string]interface{}{"type": "number", "description": "Agreed rate in dollars."},
						"pickup_date":   map[string]interface{}{"type": "string", "description": "Pickup date, YYYY-MM-DD."},
						"delivery_date": map[string]interface{}{"type": "string", "description": "Delivery date, YYYY-MM-DD."},
						"shipper":       map[string]interface{}{"type": "string", "description": "Shipper company name."},
						"equipment":     map[string]interface{}{"type": "string", "description": "Equipment type, e.g. dry van, reefer, flatbed."},
						"customer_ref":  map[string]interface{}{"type": "string", "description": "Customer reference or PO number."},
					},
					"required": []string{"origin", "destination", "rate", "pickup_date", "delivery_date", "shipper", "equipment", "customer_ref"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "update_load",
				Description: "Update fields on an existing load, found by its reference or a partial reference.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"load_reference": map[string]interface{}{"type": "string", "description": "Load reference as the operator typed it, full or partial."},
						"origin":         map[string]interface{}{"type": "string"},
						"destination":    map[string]interface{}{"type": "string"},
						"rate":           map[string]interface{}{"type": "number"},
						"pickup_date":    map[string]interface{}{"type": "string"},
						"delivery_date":  map[string]interface{}{"type": "string"},
						"shipper":        map[string]interface{}{"type": "string"},
						"equipment":      map[string]interface{}{"type": "string"},
						"customer_ref":   map[string]interface{}{"type": "string"},
						"status": map[string]interface{}{
							"type": "string",
							"enum": []string{"AVAILABLE", "IN_TRANSIT", "DELIVERED", "PROBLEM"},
						},
					},
					"required": []string{"load_reference"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "assign_driver_to_load",
				Description: "Assign a driver to a load. Both may be partial references; the driver must not already be assigned.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"driver_name":    map[string]interface{}{"type": "string", "description": "Driver name as the operator typed it."},
						"load_reference": map[string]interface{}{"type": "string", "description": "Load reference as the operator typed it."},
					},
					"required": []string{"driver_name", "load_reference"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "get_load_details",
				Description: "Fetch one load with its assignment and driver, found by reference or partial reference.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"load_reference": map[string]interface{}{"type": "string", "description": "Load reference as the operator typed it."},
					},
					"required": []string{"load_reference"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "locate_vehicle",
				Description: "Find a vehicle's current location across all connected tracking providers.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{"type": "string", "description": "The operator's vehicle question, e.g. \"where is truck 982\"."},
					},
					"required": []string{"query"},
				},
			},
		},
	}
}
