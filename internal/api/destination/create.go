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

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

type createRequest struct {
	Name     string `form:"name"     validate:"required,max=50"`
	Detail   string `form:"detail"   validate:"required"`
	Location string `form:"location" validate:"required,max=100"`
	Province string `form:"province" validate:"required,province"`
	Category string `form:"category" validate:"required,category"`
}

// Create publishes a new post from a multipart form. The row and the
// author's ownership grant must land together: when the grant cannot be
// written the post is rolled back and the upload recorded for the sweep.
func (d *Destination) Create(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

	var req createRequest
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

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return response.Fail(
			ctx,
			http.StatusBadRequest,
			"Image is required",
			response.ErrCodeInvalidField,
		)
	}

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

	reqCtx := ctx.Request().Context()

	key := imagestore.NewKey(destinationImageDir, ext)
	if err := d.images.Upload(reqCtx, key, file, contentType); err != nil {
		d.logger.Error("image upload failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	post := store.Destination{
		Name:     req.Name,
		Detail:   req.Detail,
		Location: req.Location,
		Province: req.Province,
		Category: req.Category,
		ImageKey: key,
		UserID:   userID,
	}
	if err := d.db.CreateDestination(reqCtx, &post); err != nil {
		d.logger.Error("post create failed", slog.String("error", err.Error()))
		if err := d.db.RecordDanglingImage(reqCtx, key); err != nil {
			d.logger.Error(
				"dangling image record failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return response.Internal(ctx)
	}

	err = d.manager.OnResourceCreated(
		reqCtx,
		authz.UserSubject(userID),
		authz.ResourceTypeDestination,
		post.ID,
	)
	if err != nil {
		d.logger.Error(
			"ownership grant failed",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
		if err := d.db.SoftDeleteDestination(reqCtx, post.ID); err != nil {
			d.logger.Error(
				"post rollback failed",
				slog.String("post_id", post.ID),
				slog.String("error", err.Error()),
			)
		}
		return response.Internal(ctx)
	}

	d.logger.Info(
		"post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", userID),
	)

	view := d.postView(&post)

	return response.OK(ctx, http.StatusCreated, "Destination created", view)
}
