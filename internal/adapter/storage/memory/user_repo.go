// Package memory holds the process-local credential table.
package memory

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
)

// SeedUser is one plaintext account entry from configuration.
type SeedUser struct {
	Username string
	Password string
	Role     string
}

// UserRepository is read-only after construction and safe for concurrent use.
type UserRepository struct {
	users map[string]domain.UserRecord
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository hashes every seed password once and builds the table.
func NewUserRepository(seeds []SeedUser, hasher ports.HashService) (*UserRepository, error) {
	users := make(map[string]domain.UserRecord, len(seeds))
	for _, s := range seeds {
		if s.Username == "" {
			return nil, fmt.Errorf("seed user with empty username")
		}
		if _, dup := users[s.Username]; dup {
			return nil, fmt.Errorf("duplicate seed user %q", s.Username)
		}
		role := domain.Role(s.Role)
		if !role.IsKnown() {
			return nil, fmt.Errorf("seed user %q: unknown role %q", s.Username, s.Role)
		}
		hash, err := hasher.Hash(s.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", s.Username, err)
		}
		users[s.Username] = domain.UserRecord{
			Username:     s.Username,
			PasswordHash: hash,
			Role:         role,
		}
	}
	return &UserRepository{users: users}, nil
}

// Find returns nil, nil for an unknown username.
func (r *UserRepository) Find(_ context.Context, username string) (*domain.UserRecord, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
