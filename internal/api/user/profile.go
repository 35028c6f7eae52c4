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

package user

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

// GetProfile returns the authenticated user's own profile.
func (u *User) GetProfile(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

	usr, err := u.db.GetUserByID(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"User not found",
				response.ErrCodeUserNotFound,
			)
		}
		u.logger.Error("profile lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Profile found", u.profileView(usr))
}

type updateProfileRequest struct {
	Name      *string  `json:"name"      validate:"omitempty,max=50"`
	Gender    *string  `json:"gender"    validate:"omitempty,oneof=male female"`
	BirthDate *string  `json:"birthDate"`
	Interests []string `json:"interests" validate:"omitempty,dive,required,max=50"`
}

// UpdateProfile applies a partial profile update. Absent fields keep
// their current value; interests, when present, replace the whole set.
func (u *User) UpdateProfile(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

	var req updateProfileRequest
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

	update := store.ProfileUpdate{
		Name:      req.Name,
		Gender:    req.Gender,
		Interests: req.Interests,
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			return response.Fail(
				ctx,
				http.StatusBadRequest,
				"Invalid birth date",
				response.ErrCodeInvalidField,
			)
		}
		update.BirthDate = &birthDate
	}

	if err := u.db.UpdateProfile(ctx.Request().Context(), userID, update); err != nil {
		u.logger.Error("profile update failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Profile updated", nil)
}
