// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

// RedisInviteTokenRepository implements [InviteTokenRepository] using Redis.
//
// Keys hold the digest of the token, never the token itself.
type RedisInviteTokenRepository struct {
	client redis.UniversalClient
}

// NewInviteTokenRepository creates a new Redis-backed InviteTokenRepository.
func NewInviteTokenRepository(client redis.UniversalClient) *RedisInviteTokenRepository {
	return &RedisInviteTokenRepository{client: client}
}

func inviteKey(token string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixInviteToken, sec.HashToken(token))
}

/*
Set stores an invitation token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisInviteTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, inviteKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_invite_token_set_failed: %w", err)
	}
	return nil
}

/*
Claim atomically reads and deletes the token with GETDEL.

Description: Returns apperr.NotFound if the token is absent, expired or was
claimed by a concurrent request.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Invited UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisInviteTokenRepository) Claim(context context.Context, token string) (string, error) {
	userID, err := repository.client.GetDel(context, inviteKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound(msgInvalidInvite)
		}
		return "", fmt.Errorf("redis_invite_token_claim_failed: %w", err)
	}
	return userID, nil
}
