package services

import (
	"context"
	"errors"
	"strings"

	"salesproject-backend/apperr"
	"salesproject-backend/dto"
	"salesproject-backend/models"

	zlog "github.com/rs/zerolog/log"
)

// Principal is an authenticated user and its granted authorities.
type Principal struct {
	Username string
	Email    string
	Roles    []string
}

// Authenticator verifies a username/password pair. Bad credentials must be
// reported with an apperr authentication error.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Principal, error)
}

// TokenIssuer signs a token for the subject carrying its roles.
type TokenIssuer func(subject string, roles []string) (string, error)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthService struct {
	authn Authenticator
	issue TokenIssuer
	users UserStore
}

func NewAuthService(authn Authenticator, issue TokenIssuer, users UserStore) *AuthService {
	return &AuthService{authn: authn, issue: issue, users: users}
}

// Login authenticates the pair and issues a token. Nothing is stored.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	principal, err := s.authn.Authenticate(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAuthentication {
			zlog.Info().Str("username", req.Username).Msg("login rejected")
		}
		return dto.AuthResponse{}, err
	}

	token, err := s.issue(principal.Username, principal.Roles)
	if err != nil {
		return dto.AuthResponse{}, apperr.Wrap(err, "issue token")
	}

	roles := principal.Roles
	if roles == nil {
		roles = []string{}
	}
	var email *string
	if principal.Email != "" {
		email = &principal.Email
	}
	return dto.AuthResponse{
		Token:    token,
		Type:     "Bearer",
		Username: principal.Username,
		Email:    email,
		Roles:    roles,
	}, nil
}

// Profile returns the public projection of a user: full name and upper-cased email.
func (s *AuthService) Profile(ctx context.Context, username string) (dto.UserProjection, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return dto.UserProjection{}, err
	}
	return dto.UserProjection{
		FullName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email:    strings.ToUpper(u.Email),
	}, nil
}

// DBAuthenticator checks credentials against the users table.
type DBAuthenticator struct {
	users UserStore
}

func NewDBAuthenticator(users UserStore) *DBAuthenticator {
	return &DBAuthenticator{users: users}
}

func (a *DBAuthenticator) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	u, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Authentication(err)
		}
		return nil, err
	}
	if err := u.ComparePassword(password); err != nil {
		return nil, apperr.Authentication(err)
	}
	return &Principal{Username: u.Username, Email: u.Email, Roles: append([]string(nil), u.Roles...)}, nil
}
