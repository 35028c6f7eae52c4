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

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Register creates a new account. New accounts hold only the implicit
// user role until an admin promotes them.
func (a *Auth) Register(
	ctx echo.Context,
) error {
	var req registerRequest
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

	reqCtx := ctx.Request().Context()

	if _, err := a.db.GetUserByEmail(reqCtx, req.Email); err == nil {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Email already used",
			response.ErrCodeEmailAlreadyUsed,
		)
	} else if !errors.Is(err, store.ErrNotFound) {
		a.logger.Error("register lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	if _, err := a.db.GetUserByUsername(reqCtx, req.Username); err == nil {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Username already used",
			response.ErrCodeUsernameAlreadyUsed,
		)
	} else if !errors.Is(err, store.ErrNotFound) {
		a.logger.Error("register lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(req.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		a.logger.Error("password hash failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	user := store.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := a.db.CreateUser(reqCtx, &user); err != nil {
		a.logger.Error("user create failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	a.logger.Info("user registered", slog.String("user_id", user.ID))

	return response.OK(ctx, http.StatusCreated, "User registered", map[string]any{
		"userId": user.ID,
	})
}
