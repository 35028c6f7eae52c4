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
	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/store"
)

// Delete soft-deletes a post and retracts every grant scoped to it. The
// retraction covers all subjects, so grants never outlive the post even
// when an admin deleted it on the owner's behalf.
func (d *Destination) Delete(
	ctx echo.Context,
) error {
	postID := ctx.Param("postId")

	reqCtx := ctx.Request().Context()

	if err := d.db.SoftDeleteDestination(reqCtx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"Destination not found",
				response.ErrCodeNotFound,
			)
		}
		d.logger.Error("post delete failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	err := d.manager.OnResourceDeleted(
		reqCtx,
		authz.ResourceTypeDestination,
		postID,
	)
	if err != nil {
		d.logger.Error(
			"grant retraction failed",
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	d.logger.Info("post deleted", slog.String("post_id", postID))

	return response.OK(ctx, http.StatusOK, "Destination deleted", nil)
}
