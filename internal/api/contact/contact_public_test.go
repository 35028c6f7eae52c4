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

package contact_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/telusuri/telusuri/internal/api/contact"
	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/store"
)

type ContactPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	handler *contact.Contact
	db      *store.Database
	echo    *echo.Echo
}

func (s *ContactPublicTestSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.db = store.New(db, logger)
	s.Require().NoError(s.db.Migrate())

	s.handler = contact.New(s.db, logger)
	s.echo = echo.New()
}

func (s *ContactPublicTestSuite) TestCreate() {
	tests := []struct {
		name     string
		body     string
		userID   string
		wantCode int
	}{
		{
			name: "accepts an anonymous message",
			body: `{"name":"Dewi","email":"dewi@example.com","reason":"Feedback",` +
				`"message":"Great site"}`,
			wantCode: http.StatusCreated,
		},
		{
			name: "links a signed-in sender",
			body: `{"name":"Dewi","email":"dewi@example.com","reason":"Feedback",` +
				`"message":"Great site"}`,
			userID:   "3c9a7d6e-5f7c-4a9e-8a21-9d1f22c7b111",
			wantCode: http.StatusCreated,
		},
		{
			name:     "rejects a message without a reason",
			body:     `{"name":"Dewi","email":"dewi@example.com","message":"Hi"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(
				http.MethodPost,
				"/api/contact",
				strings.NewReader(tc.body),
			)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			ctx := s.echo.NewContext(req, rec)
			if tc.userID != "" {
				ctx.Set(response.ContextKeyUserID, tc.userID)
			}

			s.Require().NoError(s.handler.Create(ctx))
			s.Equal(tc.wantCode, rec.Code)
		})
	}

	contacts, err := s.db.ListContacts(s.ctx, 0, 30)
	s.Require().NoError(err)
	s.Require().Len(contacts, 2)

	linked := 0
	for _, c := range contacts {
		if c.UserID != nil {
			linked++
			s.Equal("3c9a7d6e-5f7c-4a9e-8a21-9d1f22c7b111", *c.UserID)
		}
	}
	s.Equal(1, linked)
}

func TestContactPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ContactPublicTestSuite))
}
