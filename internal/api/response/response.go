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

// Package response defines the JSON envelope and error codes shared by
// all API handlers.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware.
const (
	// ContextKeyUserID carries the authenticated user's ID.
	ContextKeyUserID = "auth.user_id"
)

// Machine-readable error codes carried in the errCode field.
const (
	ErrCodeInvalidField        = "ERR_INVALID_FIELD"
	ErrCodeEmailAlreadyUsed    = "ERR_EMAIL_ALREADY_USED"
	ErrCodeUsernameAlreadyUsed = "ERR_USERNAME_ALREADY_USED"
	ErrCodeUserNotFound        = "ERR_USER_NOT_FOUND"
	ErrCodeInvalidLogin        = "ERR_INVALID_LOGIN"
	ErrCodeInvalidToken        = "ERR_INVALID_TOKEN"
	ErrCodeNotAdmin            = "ERR_NOT_ADMIN"
	ErrCodeNotOwner            = "ERR_USER_IS_NOT_OWNER"
	// Historical spelling kept for wire compatibility.
	ErrCodeNotWriter        = "ERR_NOT_WRITTER"
	ErrCodeAccountSuspended = "ERR_ACCOUNT_SUSPENDED"
	ErrCodeSuperAdmin       = "ERR_SUPER_ADMIN"
	ErrCodeNotFound         = "ERR_NOT_FOUND"
)

// Envelope is the response body shape of every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	ErrCode string `json:"errCode,omitempty"`
}

// OK writes a success envelope.
func OK(
	ctx echo.Context,
	status int,
	message string,
	data any,
) error {
	return ctx.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes a failure envelope.
func Fail(
	ctx echo.Context,
	status int,
	message string,
	errCode string,
) error {
	return ctx.JSON(status, Envelope{
		Success: false,
		Message: message,
		ErrCode: errCode,
	})
}

// Internal writes the uniform 500 envelope. Details stay in the logs.
func Internal(
	ctx echo.Context,
) error {
	return Fail(
		ctx,
		http.StatusInternalServerError,
		"An internal server error occurred",
		"",
	)
}

// UserID returns the authenticated user's ID, empty when the request is
// anonymous.
func UserID(
	ctx echo.Context,
) string {
	id, _ := ctx.Get(ContextKeyUserID).(string)

	return id
}
