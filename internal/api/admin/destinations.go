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
)

type adminPostView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// Destinations returns a page of posts for moderation, soft-deleted ones
// included. name narrows by prefix, status to posted or deleted posts.
func (a *Admin) Destinations(
	ctx echo.Context,
) error {
	status := ctx.QueryParam("status")
	switch status {
	case "", store.StatusPosted, store.StatusDeleted:
	default:
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid status",
			response.ErrCodeInvalidField,
		)
	}

	rows, err := a.db.ListAllDestinations(
		ctx.Request().Context(),
		pageParam(ctx),
		pageSize,
		ctx.QueryParam("name"),
		status,
	)
	if err != nil {
		a.logger.Error("post listing failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	views := lo.Map(rows, func(row store.AdminDestinationRow, _ int) adminPostView {
		return adminPostView{
			ID:       row.ID,
			Name:     row.Name,
			Image:    row.ImageKey,
			Username: row.Username,
			Email:    row.Email,
			Status:   row.Status,
		}
	})

	return response.OK(ctx, http.StatusOK, "Destinations found", views)
}

// RestoreDestination clears a post's soft delete, re-issues the owner's
// ownership grant, and notifies the owner.
func (a *Admin) RestoreDestination(
	ctx echo.Context,
) error {
	postID := ctx.Param("postId")

	reqCtx := ctx.Request().Context()

	if _, err := a.db.GetDestinationAny(reqCtx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"Destination not found",
				response.ErrCodeNotFound,
			)
		}
		a.logger.Error("post lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	post, err := a.db.RestoreDestination(reqCtx, postID)
	if err != nil {
		a.logger.Error("post restore failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	err = a.engine.Manager.OnResourceCreated(
		reqCtx,
		authz.UserSubject(post.UserID),
		authz.ResourceTypeDestination,
		post.ID,
	)
	if err != nil {
		a.logger.Error(
			"ownership grant failed",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	err = a.db.CreateNotification(reqCtx, &store.Notification{
		UserID: post.UserID,
		From:   "admin",
		Detail: fmt.Sprintf("Your destination %q has been restored", post.Name),
	})
	if err != nil {
		a.logger.Error(
			"notification create failed",
			slog.String("error", err.Error()),
		)
	}

	a.logger.Info("post restored", slog.String("post_id", post.ID))

	return response.OK(ctx, http.StatusOK, "Destination restored", nil)
}
