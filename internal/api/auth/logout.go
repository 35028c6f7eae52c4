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
)

// Logout deletes the refresh session and expires the cookie. The access
// token stays valid until its short TTL runs out.
func (a *Auth) Logout(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

	if cookie, err := ctx.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		err := a.db.DeleteRefreshToken(
			ctx.Request().Context(),
			userID,
			cookie.Value,
		)
		if err != nil {
			a.logger.Error(
				"session delete failed",
				slog.String("error", err.Error()),
			)
			return response.Internal(ctx)
		}
	}

	clearRefreshCookie(ctx)

	a.logger.Info("user logged out", slog.String("user_id", userID))

	return response.OK(ctx, http.StatusOK, "Logout success", nil)
}
