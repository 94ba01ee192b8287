package ports

import "context"

// ConsoleMetrics is the admin dashboard metrics block.
type ConsoleMetrics struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	AdminUsers        int64   `json:"admin_users"`
	TotalRevenue      float64 `json:"total_revenue"`
	ConversionRate    float64 `json:"conversion_rate"`
	SystemStatus      string  `json:"system_status"`
	ActiveConnections int     `json:"active_connections"`
}

// MetricsService aggregates the numbers shown on the admin landing page.
type MetricsService interface {
	ConsoleMetrics(ctx context.Context) (*ConsoleMetrics, error)
}
