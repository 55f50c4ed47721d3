package dashboard

import "context"

type DashboardService interface {
	// GetDashboard returns the figures for date (YYYY-MM-DD, default today)
	GetDashboard(ctx context.Context, date string) (*DashboardResponse, error)
}
