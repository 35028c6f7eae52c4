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
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

type updateRequest struct {
	Name     *string `form:"name"     validate:"omitempty,max=50"`
	Detail   *string `form:"detail"`
	Location *string `form:"location" validate:"omitempty,max=100"`
	Province *string `form:"province" validate:"omitempty,province"`
	Category *string `form:"category" validate:"omitempty,category"`
}

// Update edits a post from a multipart form. Absent fields keep their
// current value; a new image replaces the old one, which is reaped by
// the maintenance sweep.
func (d *Destination) Update(
	ctx echo.Context,
) error {
	postID := ctx.Param("postId")

	var req updateRequest
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

	update := store.DestinationUpdate{
		Name:     req.Name,
		Detail:   req.Detail,
		Location: req.Location,
		Province: req.Province,
		Category: req.Category,
	}

	reqCtx := ctx.Request().Context()

	if fileHeader, err := ctx.FormFile("image"); err == nil {
		contentType := fileHeader.Header.Get("Content-Type")
		ext, ok := imagestore.ExtensionForContentType(contentType)
		if !ok {
			return response.Fail(
				ctx,
				http.StatusBadRequest,
				"Image must be a jpeg, png, or webp",
				response.ErrCodeInvalidField,
			)
		}

		file, err := fileHeader.Open()
		if err != nil {
			d.logger.Error("image open failed", slog.String("error", err.Error()))
			return response.Internal(ctx)
		}
		defer func() { _ = file.Close() }()

		key := imagestore.NewKey(destinationImageDir, ext)
		if err := d.images.Upload(reqCtx, key, file, contentType); err != nil {
			d.logger.Error("image upload failed", slog.String("error", err.Error()))
			return response.Internal(ctx)
		}
		update.ImageKey = &key
	}

	if err := d.db.UpdateDestination(reqCtx, postID, update); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"Destination not found",
				response.ErrCodeNotFound,
			)
		}
		d.logger.Error("post update failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	d.logger.Info("post updated", slog.String("post_id", postID))

	return response.OK(ctx, http.StatusOK, "Destination updated", nil)
}
