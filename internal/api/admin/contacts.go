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
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

type contactView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
	UserID    *string   `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contacts returns a page of contact form messages, newest first.
func (a *Admin) Contacts(
	ctx echo.Context,
) error {
	contacts, err := a.db.ListContacts(
		ctx.Request().Context(),
		pageParam(ctx),
		pageSize,
	)
	if err != nil {
		a.logger.Error(
			"contact listing failed",
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	views := lo.Map(contacts, func(c store.Contact, _ int) contactView {
		return contactView{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Reason:    c.Reason,
			Message:   c.Message,
			UserID:    c.UserID,
			CreatedAt: c.CreatedAt,
		}
	})

	return response.OK(ctx, http.StatusOK, "Contacts found", views)
}
