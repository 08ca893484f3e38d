package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const refreshTokenKeyPrefix = "refresh_token:"

// ErrTokenNotFound is returned when a refresh token id is unknown or expired.
var ErrTokenNotFound = errors.New("refresh token not found")

// KV is the subset of the Redis client the token store needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, sub Identity, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (Identity, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	kv KV
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(kv KV) *TokenStore {
	return &TokenStore{kv: kv}
}

type storedToken struct {
	AccountID  uint   `json:"account_id"`
	CustomerID uint   `json:"customer_id"`
	Email      string `json:"email"`
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, sub Identity, ttl time.Duration) error {
	payload, err := json.Marshal(storedToken{AccountID: sub.AccountID, CustomerID: sub.CustomerID, Email: sub.Email})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.kv.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (Identity, error) {
	data, err := s.kv.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil {
		return Identity{}, err
	}
	if data == nil {
		return Identity{}, ErrTokenNotFound
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return Identity{}, fmt.Errorf("unmarshal token data: %w", err)
	}
	return Identity{AccountID: stored.AccountID, CustomerID: stored.CustomerID, Email: stored.Email}, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.kv.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
