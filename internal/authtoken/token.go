// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package authtoken generates and validates the JWT access and refresh
// tokens the API authenticates with.
package authtoken

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "telusuri"

// Token kinds carried in the kind claim.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// CustomClaims are the JWT claims carried by both token kinds.
type CustomClaims struct {
	// UserID identifies the authenticated user.
	UserID string `json:"uid"  validate:"required,uuid4"`
	// Kind distinguishes access tokens from refresh tokens so one can
	// never be presented where the other is expected.
	Kind string `json:"kind" validate:"required,oneof=access refresh"`
	jwt.RegisteredClaims
}

// Token generates and validates JWTs.
type Token struct {
	logger *slog.Logger
}

// New factory to create a new Token instance.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
	}
}

// Generate creates a signed token of the given kind for the user.
func (t *Token) Generate(
	signingKey string,
	userID string,
	kind string,
	ttl time.Duration,
) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(signingKey))
}

// GenerateAccess creates a signed access token for the user.
func (t *Token) GenerateAccess(
	signingKey string,
	userID string,
	ttl time.Duration,
) (string, error) {
	return t.Generate(signingKey, userID, KindAccess, ttl)
}

// GenerateRefresh creates a signed refresh token for the user.
func (t *Token) GenerateRefresh(
	signingKey string,
	userID string,
	ttl time.Duration,
) (string, error) {
	return t.Generate(signingKey, userID, KindRefresh, ttl)
}
