// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/argon2"
)

// # Password Hashing

// HashParams tunes the argon2id key derivation.
type HashParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams follows the OWASP argon2id baseline.
var DefaultHashParams = HashParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// ErrEmptySecret is returned when the hasher is built without a pepper.
var ErrEmptySecret = errors.New("sec: AUTH_SECRET is required to hash passwords")

// Hasher derives and verifies peppered argon2id password hashes.
//
// The pepper is the BLAKE3-256 digest of the server secret. Every password is
// first run through a BLAKE3 keyed hash with it, so a leaked database cannot
// be brute forced without the secret.
type Hasher struct {
	pepper []byte
	params HashParams
}

// NewHasher builds a [Hasher] from the server secret.
func NewHasher(secret string, params HashParams) (*Hasher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	pepper := blake3.Sum256([]byte(secret))
	return &Hasher{pepper: pepper[:], params: params}, nil
}

// Hash returns the PHC encoded argon2id hash of plain.
func (hasher *Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, hasher.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to read salt: %w", err)
	}

	input, err := hasher.peppered(plain)
	if err != nil {
		return "", err
	}

	params := hasher.params
	key := argon2.IDKey(input, salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, params.Memory, params.Iterations, params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches the stored hash.
//
// It never errors: a malformed hash, an unsupported algorithm or a mismatch
// all return false. The comparison runs in constant time.
func (hasher *Hasher) Verify(plain, stored string) bool {
	params, salt, expected, ok := decodeHash(stored)
	if !ok {
		return false
	}

	input, err := hasher.peppered(plain)
	if err != nil {
		return false
	}

	actual := argon2.IDKey(input, salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// peppered mixes the server pepper into the plaintext.
func (hasher *Hasher) peppered(plain string) ([]byte, error) {
	keyed, err := blake3.NewKeyed(hasher.pepper)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to key pepper: %w", err)
	}
	_, _ = keyed.Write([]byte(plain))
	return keyed.Sum(nil), nil
}

// decodeHash parses "$argon2id$v=19$m=..,t=..,p=..$salt$key".
func decodeHash(encoded string) (HashParams, []byte, []byte, bool) {
	var params HashParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, false
	}
	if params.Iterations == 0 || params.Parallelism == 0 {
		return params, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, false
	}

	return params, salt, key, true
}
