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

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

// publicProfileView is what anyone may see of a user.
type publicProfileView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Username     string           `json:"username"`
	ProfileImage string           `json:"profileImage"`
	Destinations []publicPostView `json:"destinations"`
}

type publicPostView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Location string `json:"location"`
	Province string `json:"province"`
	Category string `json:"category"`
}

// Get returns a user's public profile with their live posts.
func (u *User) Get(
	ctx echo.Context,
) error {
	userID := ctx.Param("userId")

	reqCtx := ctx.Request().Context()

	usr, err := u.db.GetUserByID(reqCtx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"User not found",
				response.ErrCodeUserNotFound,
			)
		}
		u.logger.Error("user lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	destinations, err := u.db.ListDestinations(reqCtx, store.DestinationFilter{
		Sort:   store.SortWrittenByYou,
		UserID: usr.ID,
	})
	if err != nil {
		u.logger.Error("post listing failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	view := publicProfileView{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     usr.Username,
		ProfileImage: u.imageURL(usr.ProfileImage),
		Destinations: lo.Map(
			destinations,
			func(d store.Destination, _ int) publicPostView {
				return publicPostView{
					ID:       d.ID,
					Name:     d.Name,
					Image:    u.imageURL(d.ImageKey),
					Location: d.Location,
					Province: d.Province,
					Category: d.Category,
				}
			},
		),
	}

	return response.OK(ctx, http.StatusOK, "User found", view)
}
