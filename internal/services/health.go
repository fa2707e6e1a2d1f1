package services

import (
	"context"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthService reports whether the API can reach its database.
type HealthService struct {
	name string
	db   Pinger
}

// NewHealthService creates a new health service
func NewHealthService(name string, db Pinger) *HealthService {
	return &HealthService{name: name, db: db}
}

// Check pings the database. healthy is false when the ping fails.
func (s *HealthService) Check(ctx context.Context) (result *HealthResult, healthy bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	result = &HealthResult{Status: "healthy", Service: s.name}
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			result.Status = "unhealthy"
			return result, false
		}
	}
	return result, true
}
