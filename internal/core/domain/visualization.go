package domain

import "errors"

var ErrWorkflowUnavailable = errors.New("workflow engine unavailable")

// Chart types understood by the console frontend.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
)

// VisualizationRequest carries a natural-language query together with a free
// text description of the database it should run against. Both are forwarded
// verbatim to the workflow webhook.
type VisualizationRequest struct {
	Query  string
	Schema string
}

// Column describes one column of a tabular visualization result.
type Column struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	BaseType    string `json:"base_type,omitempty"`
}

// VisualizationResult is the tabular answer produced by the workflow engine
// (or by the local mock generator when the engine is unreachable).
type VisualizationResult struct {
	SQLQuery  string   `json:"sql_query"`
	ChartType string   `json:"chart_type"`
	XAxis     string   `json:"x_axis"`
	YAxis     string   `json:"y_axis"`
	Cols      []Column `json:"cols"`
	Rows      [][]any  `json:"rows"`
	Fallback  bool     `json:"fallback,omitempty"`
}
