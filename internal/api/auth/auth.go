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

// Package auth provides the registration, login, and token refresh API
// handlers. Access tokens travel in the Authorization header; refresh
// tokens live in an HTTP-only cookie scoped to the auth routes.
package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/authtoken"
	"github.com/telusuri/telusuri/internal/config"
	"github.com/telusuri/telusuri/internal/store"
)

// refreshCookieName is the cookie carrying the refresh token.
const refreshCookieName = "refresh_token"

// refreshCookiePath limits the cookie to the auth routes.
const refreshCookiePath = "/api/user"

// Auth serves the authentication endpoints.
type Auth struct {
	appConfig config.Config
	db        *store.Database
	token     *authtoken.Token
	logger    *slog.Logger
}

// New factory to create a new instance.
func New(
	appConfig config.Config,
	db *store.Database,
	token *authtoken.Token,
	logger *slog.Logger,
) *Auth {
	return &Auth{
		appConfig: appConfig,
		db:        db,
		token:     token,
		logger:    logger,
	}
}

// issueSession generates an access and refresh token pair, persists the
// refresh session, and sets the refresh cookie.
func (a *Auth) issueSession(
	ctx echo.Context,
	userID string,
) (string, error) {
	signingKey := a.appConfig.API.Security.SigningKey

	accessToken, err := a.token.GenerateAccess(
		signingKey,
		userID,
		a.appConfig.AccessTokenTTL(),
	)
	if err != nil {
		return "", err
	}

	refreshTTL := a.appConfig.RefreshTokenTTL()
	refreshToken, err := a.token.GenerateRefresh(signingKey, userID, refreshTTL)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(refreshTTL)
	err = a.db.SaveRefreshToken(
		ctx.Request().Context(),
		userID,
		refreshToken,
		expiresAt,
	)
	if err != nil {
		return "", err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return accessToken, nil
}

// clearRefreshCookie expires the refresh cookie on the client.
func clearRefreshCookie(
	ctx echo.Context,
) {
	ctx.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
