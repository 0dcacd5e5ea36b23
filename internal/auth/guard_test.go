package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"daily-diet/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.User, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestGuard_Authorize_TokenMode(t *testing.T) {
	guard := NewGuard(TokenResolver{}, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name        string
		token       string
		expectError error
		expectOwner string
	}{
		{name: "Valid token", token: "abc-123", expectOwner: "abc-123"},
		{name: "Surrounding whitespace trimmed", token: "  abc-123 ", expectOwner: "abc-123"},
		{name: "Missing token", token: "", expectError: model.ErrUnauthorised},
		{name: "Blank token", token: "   ", expectError: model.ErrUnauthorised},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac, err := guard.Authorize(ctx, tt.token)

			if tt.expectError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, Context{}, ac)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectOwner, ac.OwnerID)
			assert.Equal(t, tt.expectOwner, ac.SessionToken)
		})
	}
}

func TestGuard_Authorize_UserMode(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name        string
		setup       func(m *MockUserRepository)
		expectOwner string
		expectError error
	}{
		{
			name: "Known session resolves to user id",
			setup: func(m *MockUserRepository) {
				m.On("GetBySessionID", ctx, "session-1").Return(&model.User{ID: userID}, nil)
			},
			expectOwner: userID.String(),
		},
		{
			name: "Unknown session is unauthorised",
			setup: func(m *MockUserRepository) {
				m.On("GetBySessionID", ctx, "session-1").Return(nil, nil)
			},
			expectError: model.ErrUnauthorised,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setup(users)

			guard := NewGuard(NewUserResolver(users), zerolog.Nop())
			ac, err := guard.Authorize(ctx, "session-1")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectOwner, ac.OwnerID)
				assert.Equal(t, "session-1", ac.SessionToken)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestGuard_Authorize_StoreError(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetBySessionID", ctx, "session-1").Return(nil, errors.New("connection refused"))

	guard := NewGuard(NewUserResolver(users), zerolog.Nop())
	_, err := guard.Authorize(ctx, "session-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUnauthorised)
	assert.Contains(t, err.Error(), "failed to resolve session")
}

func TestGuard_Authorize_MissingTokenSkipsResolver(t *testing.T) {
	users := new(MockUserRepository)
	guard := NewGuard(NewUserResolver(users), zerolog.Nop())

	_, err := guard.Authorize(context.Background(), "")

	assert.ErrorIs(t, err, model.ErrUnauthorised)
	users.AssertNotCalled(t, "GetBySessionID", mock.Anything, mock.Anything)
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		header   string
		expected string
	}{
		{name: "Cookie only", cookie: "from-cookie", expected: "from-cookie"},
		{name: "Header only", header: "from-header", expected: "from-header"},
		{name: "Cookie wins over header", cookie: "from-cookie", header: "from-header", expected: "from-cookie"},
		{name: "Neither", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/meals", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sessionId", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("X-Session-Id", tt.header)
			}

			assert.Equal(t, tt.expected, TokenFromRequest(req, "sessionId", "X-Session-Id"))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithContext(context.Background(), Context{SessionToken: "t", OwnerID: "o"})
	ac, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "o", ac.OwnerID)
}
