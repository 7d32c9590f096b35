// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package sec provides cryptographic primitives, the permission catalog and
// the authorization rules shared by the whole API.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing,
// permission checks) from the domain logic. Domain services receive its
// types through constructors, nothing here holds global mutable state.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ProvisioningClaims is the payload of a machine token allowed to create
// collaborators through the provisioning endpoint.
type ProvisioningClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies provisioning tokens using HS256.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenService creates a new TokenService keyed with the server secret.
func NewTokenService(secret, issuer, audience string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}, nil
}

// IssueProvisioningToken signs a token for subject that expires after timeToLive.
func (service *TokenService) IssueProvisioningToken(subject string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := ProvisioningClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyProvisioningToken checks the signature, issuer, audience and expiry.
func (service *TokenService) VerifyProvisioningToken(tokenString string) (*ProvisioningClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ProvisioningClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*ProvisioningClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
