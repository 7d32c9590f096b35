// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

var fastParams = sec.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

/*
TestHasher_RoundTrip verifies hashing and verification of the same password.
*/
func TestHasher_RoundTrip(t *testing.T) {
	hasher, err := sec.NewHasher("pepper", fastParams)
	require.NoError(t, err)

	hash, err := hasher.Hash("S3nha!forte")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.True(t, hasher.Verify("S3nha!forte", hash))
	assert.False(t, hasher.Verify("s3nha!forte", hash))

	again, err := hasher.Hash("S3nha!forte")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salts must differ")
}

/*
TestHasher_PepperMatters ensures a hash made with one secret fails with another.
*/
func TestHasher_PepperMatters(t *testing.T) {
	first, err := sec.NewHasher("pepper-a", fastParams)
	require.NoError(t, err)
	second, err := sec.NewHasher("pepper-b", fastParams)
	require.NoError(t, err)

	hash, err := first.Hash("S3nha!forte")
	require.NoError(t, err)

	assert.False(t, second.Verify("S3nha!forte", hash))
}

/*
TestHasher_MalformedHash returns false instead of failing.
*/
func TestHasher_MalformedHash(t *testing.T) {
	hasher, err := sec.NewHasher("pepper", fastParams)
	require.NoError(t, err)

	for _, stored := range []string{
		"",
		"plain-text",
		"$2a$10$bcryptlookingvalue",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		assert.False(t, hasher.Verify("anything", stored), stored)
	}
}

/*
TestNewHasher_EmptySecret refuses to build without a pepper.
*/
func TestNewHasher_EmptySecret(t *testing.T) {
	_, err := sec.NewHasher("", sec.DefaultHashParams)
	assert.ErrorIs(t, err, sec.ErrEmptySecret)
}

/*
TestTokens checks token generation and digest stability.
*/
func TestTokens(t *testing.T) {
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	assert.Equal(t, sec.HashToken(token), sec.HashToken(token))
	assert.NotEqual(t, sec.HashToken(token), sec.HashToken(other))
	assert.Len(t, sec.HashToken(token), 64)
}

/*
TestTokenService_Provisioning covers signing and verification.
*/
func TestTokenService_Provisioning(t *testing.T) {
	service, err := sec.NewTokenService("secret", "motolink.com.br", "provisioning")
	require.NoError(t, err)

	token, err := service.IssueProvisioningToken("seed", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyProvisioningToken(token)
	require.NoError(t, err)
	assert.Equal(t, "seed", claims.Subject)

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("other", "motolink.com.br", "provisioning")
		require.NoError(t, err)
		_, err = other.VerifyProvisioningToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong_audience", func(t *testing.T) {
		other, err := sec.NewTokenService("secret", "motolink.com.br", "elsewhere")
		require.NoError(t, err)
		_, err = other.VerifyProvisioningToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := service.IssueProvisioningToken("seed", -time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyProvisioningToken(expired)
		assert.Error(t, err)
	})
}
