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

package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

type adminUserView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Users returns a page of accounts with their direct roles.
func (a *Admin) Users(
	ctx echo.Context,
) error {
	users, total, err := a.db.ListUsers(
		ctx.Request().Context(),
		pageParam(ctx),
		pageSize,
	)
	if err != nil {
		a.logger.Error("user listing failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	views := lo.Map(users, func(usr store.User, _ int) adminUserView {
		return adminUserView{
			ID:       usr.ID,
			Name:     usr.Name,
			Username: usr.Username,
			Email:    usr.Email,
			Roles:    a.engine.Store.GetRolesForUser(authz.UserSubject(usr.ID)),
		}
	})

	return response.OK(ctx, http.StatusOK, "Users found", map[string]any{
		"users": views,
		"total": total,
	})
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// roleAction runs a lifecycle mutation against an existing user and maps
// its domain errors onto the wire.
func (a *Admin) roleAction(
	ctx echo.Context,
	action func(userID string) error,
	successMessage string,
) error {
	userID := ctx.Param("userId")

	usr, err := a.db.GetUserByID(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"User not found",
				response.ErrCodeUserNotFound,
			)
		}
		a.logger.Error("user lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	if err := action(usr.ID); err != nil {
		switch {
		case errors.Is(err, authz.ErrSuperAdminImmutable):
			return response.Fail(
				ctx,
				http.StatusBadRequest,
				"Can not modify super admin",
				response.ErrCodeSuperAdmin,
			)
		case errors.Is(err, authz.ErrUnknownRole):
			return response.Fail(
				ctx,
				http.StatusBadRequest,
				"Invalid role",
				response.ErrCodeInvalidField,
			)
		}
		a.logger.Error("role action failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, successMessage, nil)
}

// bindRole extracts the role from the request body.
func (a *Admin) bindRole(
	ctx echo.Context,
) (string, bool) {
	var req roleRequest
	if err := ctx.Bind(&req); err != nil {
		return "", false
	}
	if _, ok := validation.Struct(req); !ok {
		return "", false
	}

	return req.Role, true
}

// Promote assigns a role from the ladder to a user.
func (a *Admin) Promote(
	ctx echo.Context,
) error {
	role, ok := a.bindRole(ctx)
	if !ok {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Role is required",
			response.ErrCodeInvalidField,
		)
	}

	reqCtx := ctx.Request().Context()

	return a.roleAction(ctx, func(userID string) error {
		if err := a.engine.Manager.Promote(reqCtx, userID, role); err != nil {
			return err
		}

		err := a.db.CreateNotification(reqCtx, &store.Notification{
			UserID: userID,
			From:   "admin",
			Detail: fmt.Sprintf("You are now a %s", role),
		})
		if err != nil {
			a.logger.Error(
				"notification create failed",
				slog.String("error", err.Error()),
			)
		}

		return nil
	}, "User promoted")
}

// Demote removes a role from a user.
func (a *Admin) Demote(
	ctx echo.Context,
) error {
	role, ok := a.bindRole(ctx)
	if !ok {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Role is required",
			response.ErrCodeInvalidField,
		)
	}

	reqCtx := ctx.Request().Context()

	return a.roleAction(ctx, func(userID string) error {
		return a.engine.Manager.Demote(reqCtx, userID, role)
	}, "User demoted")
}

// Ban suspends a user. Their refresh sessions are revoked so the ban
// takes effect as soon as the current access token expires.
func (a *Admin) Ban(
	ctx echo.Context,
) error {
	reqCtx := ctx.Request().Context()

	return a.roleAction(ctx, func(userID string) error {
		if err := a.engine.Manager.Ban(reqCtx, userID); err != nil {
			return err
		}

		if err := a.db.DeleteRefreshTokensForUser(reqCtx, userID); err != nil {
			return err
		}

		err := a.db.CreateNotification(reqCtx, &store.Notification{
			UserID: userID,
			From:   "admin",
			Detail: "Your account has been suspended",
		})
		if err != nil {
			a.logger.Error(
				"notification create failed",
				slog.String("error", err.Error()),
			)
		}

		return nil
	}, "User banned")
}

// Unban lifts a user's suspension; their earlier grants apply again.
func (a *Admin) Unban(
	ctx echo.Context,
) error {
	reqCtx := ctx.Request().Context()

	return a.roleAction(ctx, func(userID string) error {
		return a.engine.Manager.Unban(reqCtx, userID)
	}, "User unbanned")
}
