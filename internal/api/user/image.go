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

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
)

// profileImageDir is the object key directory of profile images.
const profileImageDir = "profile"

// UpdateProfileImage replaces the user's profile image. The old object is
// recorded as dangling and reaped by the maintenance sweep rather than
// deleted inline.
func (u *User) UpdateProfileImage(
	ctx echo.Context,
) error {
	userID := response.UserID(ctx)

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
		u.logger.Error("image open failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}
	defer func() { _ = file.Close() }()

	reqCtx := ctx.Request().Context()

	key := imagestore.NewKey(profileImageDir, ext)
	if err := u.images.Upload(reqCtx, key, file, contentType); err != nil {
		u.logger.Error("image upload failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	previous, err := u.db.SetProfileImage(reqCtx, userID, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.Fail(
				ctx,
				http.StatusNotFound,
				"User not found",
				response.ErrCodeUserNotFound,
			)
		}
		u.logger.Error("image save failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	if previous != "" {
		if err := u.db.RecordDanglingImage(reqCtx, previous); err != nil {
			u.logger.Error(
				"dangling image record failed",
				slog.String("key", previous),
				slog.String("error", err.Error()),
			)
		}
	}

	return response.OK(ctx, http.StatusOK, "Profile image updated", map[string]any{
		"profileImage": u.images.PublicURL(key),
	})
}
