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

package wishlist

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

// List returns the user's wishlist, newest first. Entries whose post was
// deleted since wishing are dropped from the view.
func (w *Wishlist) List(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

	wishlists, err := w.db.ListWishlists(ctx.Request().Context(), userID)
	if err != nil {
		w.logger.Error(
			"wishlist listing failed",
			slog.String("error", err.Error()),
		)
		return response.Internal(ctx)
	}

	views := make([]entryView, 0, len(wishlists))
	for _, entry := range wishlists {
		if entry.Destination == nil {
			continue
		}
		views = append(views, w.entryView(entry.Destination))
	}

	return response.OK(ctx, http.StatusOK, "Wishlists found", views)
}

// Add puts a post on the user's wishlist. Adding it twice is a no-op.
func (w *Wishlist) Add(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)
	postID := ctx.Param("postId")

	reqCtx := ctx.Request().Context()

	if _, err := w.db.GetDestination(reqCtx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"Destination not found",
				response.ErrCodeNotFound,
			)
		}
		w.logger.Error("post lookup failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	if err := w.db.AddWishlist(reqCtx, userID, postID); err != nil {
		w.logger.Error("wishlist add failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Added to wishlist", nil)
}

// Remove takes a post off the user's wishlist.
func (w *Wishlist) Remove(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)
	postID := ctx.Param("postId")

	err := w.db.RemoveWishlist(ctx.Request().Context(), userID, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"Wishlist not found",
				response.ErrCodeNotFound,
			)
		}
		w.logger.Error("wishlist remove failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusOK, "Removed from wishlist", nil)
}
