package repository

import (
	"context"
	"fmt"
	"time"
)

// RevokeToken stores a revocation marker for the token id until the token's
// natural expiry. Revocation is store-backed so it survives restarts and
// stays bounded by expiry-based purging.
func (r *Repository) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := r.client.Write(ctx, revokeTokenCypher, map[string]any{
		"tokenId":   tokenID,
		"expiresAt": formatTime(expiresAt),
	})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether the token id carries a live revocation.
func (r *Repository) IsTokenRevoked(ctx context.Context, tokenID string, now time.Time) (bool, error) {
	records, err := r.client.Read(ctx, isTokenRevokedCypher, map[string]any{
		"tokenId": tokenID,
		"now":     formatTime(now),
	})
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return len(records) > 0, nil
}

// PurgeExpiredTokens removes revocation markers whose expiry has passed.
func (r *Repository) PurgeExpiredTokens(ctx context.Context, now time.Time) error {
	_, err := r.client.Write(ctx, purgeExpiredTokensCypher, map[string]any{
		"now": formatTime(now),
	})
	if err != nil {
		return fmt.Errorf("purge expired tokens: %w", err)
	}
	return nil
}

const revokeTokenCypher = `
MERGE (t:RevokedToken {tokenId: $tokenId})
SET t.expiresAt = $expiresAt
RETURN t.tokenId AS tokenId
`

const isTokenRevokedCypher = `
MATCH (t:RevokedToken {tokenId: $tokenId})
WHERE t.expiresAt >= $now
RETURN t.tokenId AS tokenId
`

const purgeExpiredTokensCypher = `
MATCH (t:RevokedToken)
WHERE t.expiresAt < $now
DELETE t
`
