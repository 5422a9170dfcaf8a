package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const bearerScheme = "Bearer "

// missPassword is hashed once to give unknown usernames a real hash to verify
// against.
const missPassword = "storefront-unknown-user"

// AuthServiceImpl implements ports.AuthService.
//
// Tokens are opaque and are not checked for authenticity: Authorize only
// extracts the token from the header. Replacing this with signed, expiring
// tokens is a known gap.
type AuthServiceImpl struct {
	users   ports.UserRepository
	hashSvc ports.HashService
	log     zerolog.Logger

	missOnce sync.Once
	missHash string
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(users ports.UserRepository, hashSvc ports.HashService, log zerolog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:   users,
		hashSvc: hashSvc,
		log:     log,
	}
}

// Authorize accepts exactly "Bearer <token>" where token is non-empty and
// has no whitespace.
func (s *AuthServiceImpl) Authorize(header string) (*domain.Credential, error) {
	if !strings.HasPrefix(header, bearerScheme) {
		return nil, apperror.ErrMalformedHeader()
	}
	token := header[len(bearerScheme):]
	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return nil, apperror.ErrMalformedHeader()
	}
	return &domain.Credential{Token: token}, nil
}

// Login checks the credential table and issues a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.Credential, error) {
	user, err := s.users.Find(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		// Same Argon2 cost as a wrong password so timing does not reveal
		// which usernames exist.
		if h := s.unknownUserHash(); h != "" {
			_, _ = s.hashSvc.Verify(password, h)
		}
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		s.log.Debug().Str("username", username).Msg("login rejected: password mismatch")
		return nil, apperror.ErrInvalidCredentials()
	}

	return &domain.Credential{
		Token: domain.IssueToken(user.Username),
		Role:  user.Role,
	}, nil
}

func (s *AuthServiceImpl) unknownUserHash() string {
	s.missOnce.Do(func() {
		h, err := s.hashSvc.Hash(missPassword)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not prepare unknown-user hash")
			return
		}
		s.missHash = h
	})
	return s.missHash
}
