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

package authtoken_test

import (
	"encoding/base64"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/telusuri/telusuri/internal/authtoken"
)

type AuthTokenPublicTestSuite struct {
	suite.Suite

	token      *authtoken.Token
	signingKey string
	userID     string
}

func (s *AuthTokenPublicTestSuite) SetupTest() {
	s.token = authtoken.New(slog.Default())
	s.signingKey = "test-signing-key-for-jwt-operations"
	s.userID = uuid.NewString()
}

func (s *AuthTokenPublicTestSuite) TestNew() {
	t := authtoken.New(slog.Default())
	s.NotNil(t)
}

func (s *AuthTokenPublicTestSuite) TestGenerateAccess() {
	tokenString, err := s.token.GenerateAccess(s.signingKey, s.userID, time.Minute)

	s.NoError(err)
	s.NotEmpty(tokenString)
}

func (s *AuthTokenPublicTestSuite) TestValidate() {
	tests := []struct {
		name        string
		tokenFunc   func() string
		signingKey  string
		kind        string
		expectError bool
		errContains string
		validate    func(*authtoken.CustomClaims)
	}{
		{
			name: "valid access token",
			tokenFunc: func() string {
				t, _ := s.token.GenerateAccess(s.signingKey, s.userID, time.Minute)
				return t
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: false,
			validate: func(claims *authtoken.CustomClaims) {
				s.Equal(s.userID, claims.UserID)
				s.Equal(authtoken.KindAccess, claims.Kind)
				s.Equal("telusuri", claims.Issuer)
			},
		},
		{
			name: "valid refresh token",
			tokenFunc: func() string {
				t, _ := s.token.GenerateRefresh(s.signingKey, s.userID, time.Hour)
				return t
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindRefresh,
			expectError: false,
			validate: func(claims *authtoken.CustomClaims) {
				s.Equal(authtoken.KindRefresh, claims.Kind)
			},
		},
		{
			name: "refresh token presented as access token",
			tokenFunc: func() string {
				t, _ := s.token.GenerateRefresh(s.signingKey, s.userID, time.Hour)
				return t
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "unexpected token kind",
		},
		{
			name: "expired token",
			tokenFunc: func() string {
				t, _ := s.token.GenerateAccess(s.signingKey, s.userID, -time.Minute)
				return t
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "expired",
		},
		{
			name: "wrong signing key",
			tokenFunc: func() string {
				t, _ := s.token.GenerateAccess(s.signingKey, s.userID, time.Minute)
				return t
			},
			signingKey:  "wrong-key",
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "signature is invalid",
		},
		{
			name: "malformed token",
			tokenFunc: func() string {
				return "not-a-valid-jwt-token"
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "invalid number of segments",
		},
		{
			name: "empty token",
			tokenFunc: func() string {
				return ""
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "invalid number of segments",
		},
		{
			name: "unexpected signing method",
			tokenFunc: func() string {
				header := base64.RawURLEncoding.EncodeToString(
					[]byte(`{"alg":"none","typ":"JWT"}`),
				)
				payload := base64.RawURLEncoding.EncodeToString(
					[]byte(`{"kind":"access"}`),
				)
				return header + "." + payload + "."
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "unexpected signing method",
		},
		{
			name: "claims fail struct validation",
			tokenFunc: func() string {
				claims := authtoken.CustomClaims{
					UserID: "not-a-uuid",
					Kind:   authtoken.KindAccess,
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    "telusuri",
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
						Subject:   "not-a-uuid",
					},
				}
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
				t, _ := token.SignedString([]byte(s.signingKey))
				return t
			},
			signingKey:  s.signingKey,
			kind:        authtoken.KindAccess,
			expectError: true,
			errContains: "UserID",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tokenString := tt.tokenFunc()

			claims, err := s.token.Validate(tokenString, tt.signingKey, tt.kind)

			if tt.expectError {
				s.Error(err)
				s.Nil(claims)
				if tt.errContains != "" {
					s.Contains(err.Error(), tt.errContains)
				}
			} else {
				s.NoError(err)
				s.NotNil(claims)
				if tt.validate != nil {
					tt.validate(claims)
				}
			}
		})
	}
}

func (s *AuthTokenPublicTestSuite) TestGenerateAndValidateRoundTrip() {
	tests := []struct {
		name string
		kind string
		ttl  time.Duration
	}{
		{
			name: "access token round trip",
			kind: authtoken.KindAccess,
			ttl:  5 * time.Minute,
		},
		{
			name: "refresh token round trip",
			kind: authtoken.KindRefresh,
			ttl:  360 * time.Hour,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tokenString, err := s.token.Generate(s.signingKey, s.userID, tt.kind, tt.ttl)
			s.NoError(err)
			s.NotEmpty(tokenString)

			claims, err := s.token.Validate(tokenString, s.signingKey, tt.kind)
			s.NoError(err)
			s.NotNil(claims)
			s.Equal(s.userID, claims.UserID)
			s.Equal(tt.kind, claims.Kind)
		})
	}
}

func TestAuthTokenPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTokenPublicTestSuite))
}
