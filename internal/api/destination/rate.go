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
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

type rateRequest struct {
	Score float64 `json:"score" validate:"min=0,max=5"`
}

// Rate stores the user's score for a post, replacing any earlier score,
// and returns the updated aggregate.
func (d *Destination) Rate(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)
	postID := ctx.Param("postId")

	var req rateRequest
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

	if _, err := d.db.GetDestination(reqCtx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"Destination not found",
				response.ErrCodeNotFound,
			)
		}
		d.logger.Error("post lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	if err := d.db.UpsertRating(reqCtx, userID, postID, req.Score); err != nil {
		d.logger.Error("rating save failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	summary, err := d.db.GetRatingSummary(reqCtx, postID)
	if err != nil {
		d.logger.Error("rating summary failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Rating saved", ratingView{
		Average: summary.Average,
		Count:   summary.Count,
	})
}
