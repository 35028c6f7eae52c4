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

// Package admin provides the admin console API handlers: platform
// analytics, moderation of posts and users, and the contact inbox. Role
// changes go through the policy engine's lifecycle manager, which is the
// only writer of role tuples.
package admin

import (
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/store"
)

// pageSize is the admin console page size.
const pageSize = 30

// Admin serves the admin console endpoints.
type Admin struct {
	db     *store.Database
	engine *authz.Engine
	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	db *store.Database,
	engine *authz.Engine,
	logger *slog.Logger,
) *Admin {
	return &Admin{
		db:     db,
		engine: engine,
		logger: logger,
	}
}

// pageParam parses the page query parameter, clamping to zero.
func pageParam(
	ctx echo.Context,
) int {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page < 0 {
		page = 0
	}

	return page
}
