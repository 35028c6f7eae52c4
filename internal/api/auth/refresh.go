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

package auth

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/authtoken"
)

// Refresh rotates the refresh session. The presented token must verify as
// a refresh JWT and match a persisted, unexpired session; the session is
// replaced so a stolen cookie stops working after its first reuse.
func (a *Auth) Refresh(
	ctx echo.Context,
) error {
	cookie, err := ctx.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid token",
			response.ErrCodeInvalidToken,
		)
	}

	claims, err := a.token.Validate(
		cookie.Value,
		a.appConfig.API.Security.SigningKey,
		authtoken.KindRefresh,
	)
	if err != nil {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid token",
			response.ErrCodeInvalidToken,
		)
	}

	reqCtx := ctx.Request().Context()

	session, err := a.db.FindRefreshToken(reqCtx, cookie.Value)
	if err != nil || session.UserID != claims.UserID {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid token",
			response.ErrCodeInvalidToken,
		)
	}

	err = a.db.DeleteRefreshToken(reqCtx, claims.UserID, cookie.Value)
	if err != nil {
		a.logger.Error("session rotate failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	accessToken, err := a.issueSession(ctx, claims.UserID)
	if err != nil {
		a.logger.Error("session issue failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Token refreshed", map[string]any{
		"accessToken": accessToken,
	})
}
