package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/opsdeck/opsdeck/internal/rbac"
)

// ErrTokenRevoked indicates a structurally valid token whose session record
// is gone.
var ErrTokenRevoked = errors.New("token revoked")

// TokenStore issues and verifies bearer tokens. Tokens are signed JWTs whose
// jti indexes a Redis session record, so a logout revokes the token before
// its expiry.
type TokenStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, secret string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	Role   string `json:"role"`
	UserID int64  `json:"uid"`
	jwt.RegisteredClaims
}

type sessionPayload struct {
	UserID int64  `json:"user_id"`
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

// Issue signs a token for the principal and stores its session record.
func (ts *TokenStore) Issue(ctx context.Context, principal *rbac.Principal) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role:   string(principal.Role),
		UserID: principal.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Handle,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	payload, err := json.Marshal(sessionPayload{UserID: principal.UserID, Handle: principal.Handle, Role: string(principal.Role)})
	if err != nil {
		return "", err
	}
	if err := ts.client.Set(ctx, ts.sessionKey(claims.ID), payload, ts.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store session: %w", err)
	}
	return signed, nil
}

// Verify parses the token and resolves its principal. A missing session
// record means the token was revoked.
func (ts *TokenStore) Verify(ctx context.Context, raw string) (*rbac.Principal, error) {
	claims, err := ts.parse(raw)
	if err != nil {
		return nil, err
	}
	payload, err := ts.client.Get(ctx, ts.sessionKey(claims.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenRevoked
		}
		return nil, fmt.Errorf("auth: load session: %w", err)
	}
	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}
	role, err := rbac.ParseRole(stored.Role)
	if err != nil {
		return nil, err
	}
	return &rbac.Principal{UserID: stored.UserID, Handle: stored.Handle, Role: role}, nil
}

// Revoke deletes the session record behind the token.
func (ts *TokenStore) Revoke(ctx context.Context, raw string) error {
	claims, err := ts.parse(raw)
	if err != nil {
		return err
	}
	return ts.client.Del(ctx, ts.sessionKey(claims.ID)).Err()
}

// TTL exposes the configured token lifetime.
func (ts *TokenStore) TTL() time.Duration {
	return ts.ttl
}

func (ts *TokenStore) parse(raw string) (*tokenClaims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	return &claims, nil
}

func (ts *TokenStore) sessionKey(jti string) string {
	return "session:" + jti
}

var _ rbac.Verifier = (*TokenStore)(nil)
