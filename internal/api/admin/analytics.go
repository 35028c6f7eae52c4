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
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

type monthCountView struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// Analytics returns the platform totals and the years with activity.
func (a *Admin) Analytics(
	ctx echo.Context,
) error {
	counts, err := a.db.GetResourceCounts(ctx.Request().Context())
	if err != nil {
		a.logger.Error("analytics failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Analytics found", map[string]any{
		"userCount":        counts.UserCount,
		"destinationCount": counts.DestinationCount,
		"userYears":        counts.UserYears,
		"destinationYears": counts.DestinationYears,
	})
}

// yearParam parses the year query parameter, defaulting to the current
// year.
func yearParam(
	ctx echo.Context,
) (int, bool) {
	raw := ctx.QueryParam("year")
	if raw == "" {
		return time.Now().Year(), true
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		return 0, false
	}

	return year, true
}

func (a *Admin) monthlyAnalytics(
	ctx echo.Context,
	counter func(context.Context, int) ([]store.MonthCount, error),
) error {
	year, ok := yearParam(ctx)
	if !ok {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Invalid year",
			response.ErrCodeInvalidField,
		)
	}

	counts, err := counter(ctx.Request().Context(), year)
	if err != nil {
		a.logger.Error(
			"monthly analytics failed",
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	months := lo.Map(counts, func(c store.MonthCount, _ int) monthCountView {
		return monthCountView{Month: c.Month, Count: c.Count}
	})

	return response.OK(ctx, http.StatusOK, "Analytics found", map[string]any{
		"year":   year,
		"months": months,
	})
}

// UserAnalytics returns per-month registration counts for one year.
func (a *Admin) UserAnalytics(
	ctx echo.Context,
) error {
	return a.monthlyAnalytics(ctx, a.db.GetUserMonthlyCounts)
}

// DestinationAnalytics returns per-month post counts for one year,
// soft-deleted posts included.
func (a *Admin) DestinationAnalytics(
	ctx echo.Context,
) error {
	return a.monthlyAnalytics(ctx, a.db.GetDestinationMonthlyCounts)
}
