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

package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/telusuri/telusuri/internal/authtoken"
	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/config"
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
)

// Server wraps the Echo server and its dependencies.
type Server struct {
	Echo      *echo.Echo
	logger    *slog.Logger
	appConfig config.Config

	gormDB *gorm.DB
	db     *store.Database
	engine *authz.Engine
	token  *authtoken.Token
	images *imagestore.Store
}

// Option configures the Server.
type Option func(*Server)

// WithDatabase sets the business store and its underlying gorm handle.
func WithDatabase(
	gormDB *gorm.DB,
	db *store.Database,
) Option {
	return func(s *Server) {
		s.gormDB = gormDB
		s.db = db
	}
}

// WithEngine sets the policy engine.
func WithEngine(
	engine *authz.Engine,
) Option {
	return func(s *Server) {
		s.engine = engine
	}
}

// WithToken sets the JWT helper.
func WithToken(
	token *authtoken.Token,
) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithImageStore sets the image object store.
func WithImageStore(
	images *imagestore.Store,
) Option {
	return func(s *Server) {
		s.images = images
	}
}
