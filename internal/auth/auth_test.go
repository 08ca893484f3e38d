package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockKV) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var ada = Identity{AccountID: 7, CustomerID: 3, Email: "ada@example.com"}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	access, err := svc.GenerateAccessToken(ada)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, ada, claims.Identity())
	assert.Empty(t, claims.ID)

	tokenID, refresh, err := svc.GenerateRefreshToken(ada)
	require.NoError(t, err)
	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateAccessToken(ada)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func() string
	}{
		{name: "garbage", token: func() string { return "not-a-jwt" }},
		{name: "wrong secret", token: func() string {
			other, _ := NewJWTService("other-secret").GenerateAccessToken(ada)
			return other
		}},
		{name: "expired", token: func() string {
			old := NewJWTService("test-secret")
			old.now = func() time.Time { return time.Now().Add(-time.Hour) }
			expired, _ := old.GenerateAccessToken(ada)
			return expired
		}},
		{name: "unsigned", token: func() string {
			unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{AccountID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
			return unsigned
		}},
		{name: "tampered", token: func() string { return token[:len(token)-2] + "xx" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token())
			assert.Error(t, err)
		})
	}
}

func TestTokenStore_StoreAndGet(t *testing.T) {
	kv := new(MockKV)
	store := NewTokenStore(kv)
	ctx := context.Background()

	var saved []byte
	kv.On("Set", ctx, "refresh_token:abc", mock.Anything, RefreshTokenExpiry).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]byte) }).
		Return(nil)
	require.NoError(t, store.StoreRefreshToken(ctx, "abc", ada, RefreshTokenExpiry))

	kv.On("Get", ctx, "refresh_token:abc").Return(saved, nil)
	sub, err := store.GetRefreshToken(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, ada, sub)

	kv.AssertExpectations(t)
}

func TestTokenStore_GetMissingAndFailing(t *testing.T) {
	kv := new(MockKV)
	store := NewTokenStore(kv)
	ctx := context.Background()

	kv.On("Get", ctx, "refresh_token:gone").Return(nil, nil)
	_, err := store.GetRefreshToken(ctx, "gone")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	down := errors.New("redis get: connection refused")
	kv.On("Get", ctx, "refresh_token:down").Return(nil, down)
	_, err = store.GetRefreshToken(ctx, "down")
	assert.ErrorIs(t, err, down)

	kv.On("Get", ctx, "refresh_token:bad").Return([]byte("{"), nil)
	_, err = store.GetRefreshToken(ctx, "bad")
	assert.ErrorContains(t, err, "unmarshal token data")
}

func TestTokenStore_Delete(t *testing.T) {
	kv := new(MockKV)
	kv.On("Delete", mock.Anything, "refresh_token:abc").Return(nil)

	require.NoError(t, NewTokenStore(kv).DeleteRefreshToken(context.Background(), "abc"))
	kv.AssertExpectations(t)
}
