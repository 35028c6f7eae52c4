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

package destination

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

// validSorts are the accepted values of the sort query parameter.
var validSorts = []string{
	store.SortNewest,
	store.SortOldest,
	store.SortHighestRating,
	store.SortWrittenByYou,
}

// List returns a page of live posts. province, category, and name narrow
// the listing; sort orders it, defaulting to newest first.
func (d *Destination) List(
	ctx echo.Context,
) error {
	sort := ctx.QueryParam("sort")
	if sort != "" && !lo.Contains(validSorts, sort) {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid sort",
			response.ErrCodeInvalidField,
		)
	}

	userID := response.UserID(ctx)
	if sort == store.SortWrittenByYou && userID == "" {
		return response.Fail(
			ctx,
			http.StatusUnauthorized,
			"Invalid token",
			response.ErrCodeInvalidToken,
		)
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page < 0 {
		page = 0
	}

	filter := store.DestinationFilter{
		Province:   ctx.QueryParam("province"),
		Category:   ctx.QueryParam("category"),
		NamePrefix: ctx.QueryParam("name"),
		Sort:       sort,
		UserID:     userID,
		Page:       page,
	}

	posts, err := d.db.ListDestinations(ctx.Request().Context(), filter)
	if err != nil {
		d.logger.Error("post listing failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	views := lo.Map(posts, func(post store.Destination, _ int) postView {
		view := d.postView(&post)
		view.Detail = ""

		return view
	})

	return response.OK(ctx, http.StatusOK, "Destinations found", views)
}
