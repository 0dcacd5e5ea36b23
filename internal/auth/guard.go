// Package auth turns an opaque session token into the owner key that scopes
// every meal operation.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"daily-diet/internal/model"
	"daily-diet/internal/repository"

	"github.com/rs/zerolog"
)

// Context is the authorization context handed to the meal ledger.
type Context struct {
	SessionToken string
	OwnerID      string
}

// Resolver maps a non-empty session token to an owner key.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// TokenResolver uses the session token itself as the owner key.
type TokenResolver struct{}

// Resolve returns the token unchanged.
func (TokenResolver) Resolve(_ context.Context, token string) (string, error) {
	return token, nil
}

// UserResolver requires the token to belong to a registered user and scopes
// meals by that user's id.
type UserResolver struct {
	users repository.UserRepository
}

// NewUserResolver creates a resolver backed by the user store.
func NewUserResolver(users repository.UserRepository) *UserResolver {
	return &UserResolver{users: users}
}

// Resolve looks up the user whose session matches the token.
func (r *UserResolver) Resolve(ctx context.Context, token string) (string, error) {
	user, err := r.users.GetBySessionID(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	if user == nil {
		return "", model.ErrUnauthorised
	}
	return user.ID.String(), nil
}

// Guard rejects callers without a usable session token.
type Guard struct {
	resolver Resolver
	logger   zerolog.Logger
}

// NewGuard creates a guard using the given resolver.
func NewGuard(resolver Resolver, logger zerolog.Logger) *Guard {
	return &Guard{
		resolver: resolver,
		logger:   logger.With().Str("component", "access-guard").Logger(),
	}
}

// Authorize validates the token and resolves its owner key.
// A missing or blank token yields model.ErrUnauthorised.
func (g *Guard) Authorize(ctx context.Context, token string) (Context, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		g.logger.Debug().Msg("missing session token")
		return Context{}, model.ErrUnauthorised
	}

	owner, err := g.resolver.Resolve(ctx, token)
	if err != nil {
		return Context{}, err
	}
	if owner == "" {
		return Context{}, model.ErrUnauthorised
	}

	return Context{SessionToken: token, OwnerID: owner}, nil
}

// TokenFromRequest reads the session token from the named cookie, falling
// back to the named header. Either name may be empty to disable that source.
func TokenFromRequest(r *http.Request, cookieName, headerName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	if headerName != "" {
		return r.Header.Get(headerName)
	}
	return ""
}

type ctxKey struct{}

// WithContext stores an authorization context on ctx.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext returns the authorization context stored by WithContext.
func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(ctxKey{}).(Context)
	return ac, ok && ac.OwnerID != ""
}
