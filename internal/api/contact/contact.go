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

// Package contact provides the contact form API handler.
package contact

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
	"github.com/telusuri/telusuri/internal/validation"
)

// Contact serves the contact form endpoint.
type Contact struct {
	db     *store.Database
	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	db *store.Database,
	logger *slog.Logger,
) *Contact {
	return &Contact{
		db:     db,
		logger: logger,
	}
}

type createRequest struct {
	Name    string `json:"name"    validate:"required,max=50"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Reason  string `json:"reason"  validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=1000"`
}

// Create records a contact form message. Anonymous senders are accepted;
// a signed-in sender's message is linked to their account.
func (c *Contact) Create(
	ctx echo.Context,
) error {
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

	contact := store.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Reason:  req.Reason,
		Message: req.Message,
	}
	if userID := response.UserID(ctx); userID != "" {
		contact.UserID = &userID
	}

	if err := c.db.CreateContact(ctx.Request().Context(), &contact); err != nil {
		c.logger.Error("contact create failed", slog.String("error", err.Error()))
		return response.Internal(ctx)
	}

	return response.OK(ctx, http.StatusCreated, "Message sent", nil)
}
