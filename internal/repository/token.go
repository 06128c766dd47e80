package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
)

// tokenTTL bounds how long a handed-out pagination token stays valid.
const tokenTTL = time.Hour

type TokenRepository interface {
	Issue(ctx context.Context, page int) (string, error)
	Redeem(ctx context.Context, token string) (int, error)
}

type dbToken struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) TokenRepository {
	return &dbToken{
		client: client,
	}
}

// Issue stores a fresh opaque 16-hex token pointing at a page number.
func (that *dbToken) Issue(ctx context.Context, page int) (string, error) {
	raw := make([]byte, 8)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	tokenKey := "page-token:" + token
	if err := that.client.Set(ctx, tokenKey, page, tokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to set token: %w", err)
	}

	return token, nil
}

// Redeem resolves a token to its page number and burns it: a token is good
// for exactly one list request.
func (that *dbToken) Redeem(ctx context.Context, token string) (int, error) {
	tokenKey := "page-token:" + token

	response, err := that.client.GetDel(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperror.ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get token: %w", err)
	}

	page, err := strconv.Atoi(response)
	if err != nil {
		return 0, fmt.Errorf("failed to parse stored page: %w", err)
	}

	return page, nil
}
