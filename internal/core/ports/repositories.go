package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

import (
	"context"

	"storefront-gateway/internal/core/domain"
)

// UserRepository is the credential table lookup.
type UserRepository interface {
	// Find returns nil, nil when the username is unknown.
	Find(ctx context.Context, username string) (*domain.UserRecord, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
