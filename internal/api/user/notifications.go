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
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

type notificationView struct {
	ID        uint      `json:"id"`
	From      string    `json:"from"`
	Detail    string    `json:"detail"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifications lists the user's notifications, newest first, and marks
// the unread ones read.
func (u *User) Notifications(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

	reqCtx := ctx.Request().Context()

	notifications, err := u.db.ListNotifications(reqCtx, userID)
	if err != nil {
		u.logger.Error(
			"notification listing failed",
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	if err := u.db.MarkNotificationsRead(reqCtx, userID); err != nil {
		u.logger.Error(
			"notification mark-read failed",
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	views := lo.Map(
		notifications,
		func(n store.Notification, _ int) notificationView {
			return notificationView{
				ID:        n.ID,
				From:      n.From,
				Detail:    n.Detail,
				Read:      n.Read,
				CreatedAt: n.CreatedAt,
			}
		},
	)

	return response.OK(ctx, http.StatusOK, "Notifications found", views)
}
