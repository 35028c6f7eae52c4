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

package admin_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/telusuri/telusuri/internal/api/admin"
	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/store"
)

type AdminPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	handler *admin.Admin
	db      *store.Database
	engine  *authz.Engine
	echo    *echo.Echo
}

func (s *AdminPublicTestSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.db = store.New(db, logger)
	s.Require().NoError(s.db.Migrate())

	policyStore := authz.NewStore(db, logger)
	s.Require().NoError(policyStore.Migrate())

	s.engine, err = authz.New(s.ctx, db, logger)
	s.Require().NoError(err)
	s.Require().NoError(authz.Seed(s.ctx, s.engine.Store, nil, logger))

	s.handler = admin.New(s.db, s.engine, logger)
	s.echo = echo.New()
}

func (s *AdminPublicTestSuite) createUser(
	username string,
) *store.User {
	usr := store.User{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
	}
	s.Require().NoError(s.db.CreateUser(s.ctx, &usr))

	return &usr
}

func (s *AdminPublicTestSuite) createPost(
	userID string,
	name string,
) *store.Destination {
	post := store.Destination{
		Name:     name,
		Detail:   "A detail",
		Location: "Somewhere",
		Province: "Jawa Timur",
		Category: "Cagar Alam",
		ImageKey: "destination/fixture.jpg",
		UserID:   userID,
	}
	s.Require().NoError(s.db.CreateDestination(s.ctx, &post))

	return &post
}

func (s *AdminPublicTestSuite) getRequest(
	target string,
) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	return s.echo.NewContext(req, rec), rec
}

func (s *AdminPublicTestSuite) userRequest(
	userID string,
	body string,
) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(
		http.MethodPut,
		"/api/admin/user/"+userID,
		strings.NewReader(body),
	)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := s.echo.NewContext(req, rec)
	ctx.SetParamNames("userId")
	ctx.SetParamValues(userID)

	return ctx, rec
}

func (s *AdminPublicTestSuite) envelope(
	rec *httptest.ResponseRecorder,
) response.Envelope {
	var env response.Envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func (s *AdminPublicTestSuite) TestAnalytics() {
	usr := s.createUser("dewi")
	s.createPost(usr.ID, "Kawah Ijen")

	ctx, rec := s.getRequest("/api/admin/analytics")
	s.Require().NoError(s.handler.Analytics(ctx))
	s.Require().Equal(http.StatusOK, rec.Code)

	data := s.envelope(rec).Data.(map[string]any)
	s.Equal(1.0, data["userCount"])
	s.Equal(1.0, data["destinationCount"])
}

func (s *AdminPublicTestSuite) TestMonthlyAnalytics() {
	usr := s.createUser("dewi")
	s.createPost(usr.ID, "Kawah Ijen")

	s.Run("defaults to the current year", func() {
		ctx, rec := s.getRequest("/api/admin/user-analytic")
		s.Require().NoError(s.handler.UserAnalytics(ctx))
		s.Require().Equal(http.StatusOK, rec.Code)

		data := s.envelope(rec).Data.(map[string]any)
		s.Equal(float64(time.Now().Year()), data["year"])

		months := data["months"].([]any)
		s.Require().Len(months, 1)
		s.Equal(1.0, months[0].(map[string]any)["count"])
	})

	s.Run("counts posts for an explicit year", func() {
		ctx, rec := s.getRequest("/api/admin/destination-analytic?year=2020")
		s.Require().NoError(s.handler.DestinationAnalytics(ctx))
		s.Require().Equal(http.StatusOK, rec.Code)

		data := s.envelope(rec).Data.(map[string]any)
		s.Equal(2020.0, data["year"])
		s.Empty(data["months"])
	})

	s.Run("rejects a malformed year", func() {
		ctx, rec := s.getRequest("/api/admin/user-analytic?year=banana")
		s.Require().NoError(s.handler.UserAnalytics(ctx))
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AdminPublicTestSuite) TestDestinations() {
	usr := s.createUser("dewi")
	s.createPost(usr.ID, "Kawah Ijen")
	deleted := s.createPost(usr.ID, "Pantai Kuta")
	s.Require().NoError(s.db.SoftDeleteDestination(s.ctx, deleted.ID))

	tests := []struct {
		name       string
		query      string
		wantCode   int
		wantStatus []string
	}{
		{
			name:       "lists both posted and deleted",
			query:      "",
			wantCode:   http.StatusOK,
			wantStatus: []string{"deleted", "posted"},
		},
		{
			name:       "narrows to deleted",
			query:      "?status=deleted",
			wantCode:   http.StatusOK,
			wantStatus: []string{"deleted"},
		},
		{
			name:       "narrows by name prefix",
			query:      "?name=Kawah",
			wantCode:   http.StatusOK,
			wantStatus: []string{"posted"},
		},
		{
			name:     "rejects an unknown status",
			query:    "?status=archived",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			ctx, rec := s.getRequest("/api/admin/destinations" + tc.query)
			s.Require().NoError(s.handler.Destinations(ctx))
			s.Require().Equal(tc.wantCode, rec.Code)

			if tc.wantCode != http.StatusOK {
				return
			}

			views := s.envelope(rec).Data.([]any)
			statuses := make([]string, 0, len(views))
			for _, v := range views {
				statuses = append(statuses, v.(map[string]any)["status"].(string))
			}
			s.Equal(tc.wantStatus, statuses)
		})
	}
}

func (s *AdminPublicTestSuite) TestRestoreDestination() {
	usr := s.createUser("dewi")
	post := s.createPost(usr.ID, "Kawah Ijen")
	s.Require().NoError(s.db.SoftDeleteDestination(s.ctx, post.ID))

	req := httptest.NewRequest(
		http.MethodPut,
		"/api/admin/destination/"+post.ID+"/restore",
		nil,
	)
	rec := httptest.NewRecorder()
	ctx := s.echo.NewContext(req, rec)
	ctx.SetParamNames("postId")
	ctx.SetParamValues(post.ID)

	s.Require().NoError(s.handler.RestoreDestination(ctx))
	s.Require().Equal(http.StatusOK, rec.Code)

	restored, err := s.db.GetDestination(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("Kawah Ijen", restored.Name)

	allowed := s.engine.Enforcer.Enforce(
		authz.UserSubject(usr.ID),
		authz.ResourceObject(authz.ResourceTypeDestination, post.ID),
		authz.ActionEdit,
	)
	s.True(allowed)

	notifications, err := s.db.ListNotifications(s.ctx, usr.ID)
	s.Require().NoError(err)
	s.Require().Len(notifications, 1)
	s.Contains(notifications[0].Detail, "restored")
}

func (s *AdminPublicTestSuite) TestUsers() {
	usr := s.createUser("dewi")
	s.Require().NoError(s.engine.Manager.Promote(s.ctx, usr.ID, authz.RoleWriter))

	ctx, rec := s.getRequest("/api/admin/users")
	s.Require().NoError(s.handler.Users(ctx))
	s.Require().Equal(http.StatusOK, rec.Code)

	data := s.envelope(rec).Data.(map[string]any)
	s.Equal(1.0, data["total"])

	users := data["users"].([]any)
	s.Require().Len(users, 1)
	s.Contains(users[0].(map[string]any)["roles"].([]any), "writer")
}

func (s *AdminPublicTestSuite) TestPromoteDemote() {
	usr := s.createUser("dewi")

	s.Run("promotes to writer", func() {
		ctx, rec := s.userRequest(usr.ID, `{"role":"writer"}`)
		s.Require().NoError(s.handler.Promote(ctx))
		s.Require().Equal(http.StatusOK, rec.Code)

		allowed := s.engine.Enforcer.Enforce(
			authz.UserSubject(usr.ID),
			authz.Wildcard,
			authz.ActionCreate,
		)
		s.True(allowed)
	})

	s.Run("demotes back", func() {
		ctx, rec := s.userRequest(usr.ID, `{"role":"writer"}`)
		s.Require().NoError(s.handler.Demote(ctx))
		s.Require().Equal(http.StatusOK, rec.Code)

		allowed := s.engine.Enforcer.Enforce(
			authz.UserSubject(usr.ID),
			authz.Wildcard,
			authz.ActionCreate,
		)
		s.False(allowed)
	})

	s.Run("rejects a role outside the ladder", func() {
		ctx, rec := s.userRequest(usr.ID, `{"role":"owner"}`)
		s.Require().NoError(s.handler.Promote(ctx))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(response.ErrCodeInvalidField, s.envelope(rec).ErrCode)
	})

	s.Run("rejects an unknown user", func() {
		ctx, rec := s.userRequest(
			"9f4e6f52-0000-0000-0000-000000000000",
			`{"role":"writer"}`,
		)
		s.Require().NoError(s.handler.Promote(ctx))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal(response.ErrCodeUserNotFound, s.envelope(rec).ErrCode)
	})
}

func (s *AdminPublicTestSuite) TestSuperAdminImmutable() {
	usr := s.createUser("root")
	err := s.engine.Store.AddRoleForUser(
		s.ctx,
		authz.UserSubject(usr.ID),
		authz.RoleSuperAdmin,
	)
	s.Require().NoError(err)

	tests := []struct {
		name string
		call func(ctx echo.Context) error
		body string
	}{
		{
			name: "promote",
			call: s.handler.Promote,
			body: `{"role":"writer"}`,
		},
		{
			name: "demote",
			call: s.handler.Demote,
			body: `{"role":"admin"}`,
		},
		{
			name: "ban",
			call: s.handler.Ban,
			body: "",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			ctx, rec := s.userRequest(usr.ID, tc.body)
			s.Require().NoError(tc.call(ctx))
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(response.ErrCodeSuperAdmin, s.envelope(rec).ErrCode)
		})
	}
}

func (s *AdminPublicTestSuite) TestBanUnban() {
	usr := s.createUser("dewi")
	s.Require().NoError(s.db.SaveRefreshToken(
		s.ctx,
		usr.ID,
		"a-refresh-token",
		time.Now().Add(time.Hour),
	))

	s.Run("bans and revokes sessions", func() {
		ctx, rec := s.userRequest(usr.ID, "")
		s.Require().NoError(s.handler.Ban(ctx))
		s.Require().Equal(http.StatusOK, rec.Code)

		banned := s.engine.Store.HasRoleForUser(
			authz.UserSubject(usr.ID),
			authz.RoleBanned,
		)
		s.True(banned)

		_, err := s.db.FindRefreshToken(s.ctx, "a-refresh-token")
		s.ErrorIs(err, store.ErrNotFound)

		notifications, err := s.db.ListNotifications(s.ctx, usr.ID)
		s.Require().NoError(err)
		s.Require().Len(notifications, 1)
		s.Contains(notifications[0].Detail, "suspended")
	})

	s.Run("unbans", func() {
		ctx, rec := s.userRequest(usr.ID, "")
		s.Require().NoError(s.handler.Unban(ctx))
		s.Require().Equal(http.StatusOK, rec.Code)

		banned := s.engine.Store.HasRoleForUser(
			authz.UserSubject(usr.ID),
			authz.RoleBanned,
		)
		s.False(banned)
	})
}

func (s *AdminPublicTestSuite) TestContacts() {
	s.Require().NoError(s.db.CreateContact(s.ctx, &store.Contact{
		Name:    "Dewi",
		Email:   "dewi@example.com",
		Reason:  "Feedback",
		Message: "Great site",
	}))

	ctx, rec := s.getRequest("/api/admin/contacts")
	s.Require().NoError(s.handler.Contacts(ctx))
	s.Require().Equal(http.StatusOK, rec.Code)

	views := s.envelope(rec).Data.([]any)
	s.Require().Len(views, 1)
	s.Equal("Feedback", views[0].(map[string]any)["reason"])
}

func TestAdminPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AdminPublicTestSuite))
}
