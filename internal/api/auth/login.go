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
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by email and password. A wrong email and a wrong
// password produce the same response, so accounts cannot be enumerated.
func (a *Auth) Login(
	ctx echo.Context,
) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid request body",
			response.ErrCodeInvalidField,
		)
	}
	if msg, ok := validation.Struct(req); !ok {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			msg,
			response.ErrCodeInvalidField,
		)
	}

	user, err := a.db.GetUserByEmail(ctx.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusBadRequest,
				"Invalid Email Or Password",
				response.ErrCodeInvalidLogin,
			)
		}
		a.logger.Error("login lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	)
	if err != nil {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid Email Or Password",
			response.ErrCodeInvalidLogin,
		)
	}

	accessToken, err := a.issueSession(ctx, user.ID)
	if err != nil {
		a.logger.Error("session issue failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	a.logger.Info("user logged in", slog.String("user_id", user.ID))

	return response.OK(ctx, http.StatusOK, "Login success", map[string]any{
		"accessToken": accessToken,
	})
}
