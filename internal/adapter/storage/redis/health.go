package redis

import (
	"context"

	"storefront-gateway/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports Redis reachability on /health.
type HealthCheck struct {
	client *goredis.Client
}

var _ ports.HealthChecker = (*HealthCheck)(nil)

func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

func (h *HealthCheck) Name() string {
	return "redis"
}
