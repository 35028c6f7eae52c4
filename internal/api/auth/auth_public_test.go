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

package auth_test

import (
	"encoding/json"
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

	"github.com/telusuri/telusuri/internal/api/auth"
	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/authtoken"
	"github.com/telusuri/telusuri/internal/config"
	"github.com/telusuri/telusuri/internal/store"
)

type AuthPublicTestSuite struct {
	suite.Suite

	handler *auth.Auth
	db      *store.Database
	echo    *echo.Echo
}

func (s *AuthPublicTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.db = store.New(db, logger)
	s.Require().NoError(s.db.Migrate())

	appConfig := config.Config{
		API: config.API{
			Port: 8080,
			Security: config.Security{
				SigningKey: "test-signing-key",
			},
		},
	}

	s.handler = auth.New(appConfig, s.db, authtoken.New(logger), logger)
	s.echo = echo.New()
}

func (s *AuthPublicTestSuite) jsonRequest(
	method string,
	target string,
	body string,
) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return s.echo.NewContext(req, rec), rec
}

func (s *AuthPublicTestSuite) envelope(
	rec *httptest.ResponseRecorder,
) response.Envelope {
	var env response.Envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func (s *AuthPublicTestSuite) register(
	body string,
) *httptest.ResponseRecorder {
	ctx, rec := s.jsonRequest(http.MethodPost, "/api/user/register", body)
	s.Require().NoError(s.handler.Register(ctx))

	return rec
}

func (s *AuthPublicTestSuite) TestRegister() {
	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantErrCode string
	}{
		{
			name: "registers a new account",
			body: `{"name":"Dewi","username":"dewi","email":"dewi@example.com",` +
				`"password":"sup3rsecret"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:        "rejects a missing email",
			body:        `{"name":"Dewi","username":"dewi","password":"sup3rsecret"}`,
			wantCode:    http.StatusBadRequest,
			wantErrCode: response.ErrCodeInvalidField,
		},
		{
			name:        "rejects a short password",
			body:        `{"name":"Dewi","username":"dewi","email":"dewi@example.com","password":"short"}`,
			wantCode:    http.StatusBadRequest,
			wantErrCode: response.ErrCodeInvalidField,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			rec := s.register(tc.body)

			s.Equal(tc.wantCode, rec.Code)
			env := s.envelope(rec)
			s.Equal(tc.wantErrCode, env.ErrCode)
		})
	}
}

func (s *AuthPublicTestSuite) TestRegisterDuplicates() {
	body := `{"name":"Dewi","username":"dewi","email":"dewi@example.com",` +
		`"password":"sup3rsecret"}`
	s.Equal(http.StatusCreated, s.register(body).Code)

	tests := []struct {
		name        string
		body        string
		wantErrCode string
	}{
		{
			name: "rejects a used email",
			body: `{"name":"Other","username":"other","email":"dewi@example.com",` +
				`"password":"sup3rsecret"}`,
			wantErrCode: response.ErrCodeEmailAlreadyUsed,
		},
		{
			name: "rejects a used username",
			body: `{"name":"Other","username":"dewi","email":"other@example.com",` +
				`"password":"sup3rsecret"}`,
			wantErrCode: response.ErrCodeUsernameAlreadyUsed,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			rec := s.register(tc.body)

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tc.wantErrCode, s.envelope(rec).ErrCode)
		})
	}
}

func (s *AuthPublicTestSuite) TestLogin() {
	body := `{"name":"Dewi","username":"dewi","email":"dewi@example.com",` +
		`"password":"sup3rsecret"}`
	s.Equal(http.StatusCreated, s.register(body).Code)

	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantErrCode string
	}{
		{
			name:     "logs in with the right password",
			body:     `{"email":"dewi@example.com","password":"sup3rsecret"}`,
			wantCode: http.StatusOK,
		},
		{
			name:        "rejects a wrong password",
			body:        `{"email":"dewi@example.com","password":"wrongwrong"}`,
			wantCode:    http.StatusBadRequest,
			wantErrCode: response.ErrCodeInvalidLogin,
		},
		{
			name:        "rejects an unknown email",
			body:        `{"email":"nobody@example.com","password":"sup3rsecret"}`,
			wantCode:    http.StatusBadRequest,
			wantErrCode: response.ErrCodeInvalidLogin,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			ctx, rec := s.jsonRequest(http.MethodPost, "/api/user/login", tc.body)
			s.Require().NoError(s.handler.Login(ctx))

			s.Equal(tc.wantCode, rec.Code)
			env := s.envelope(rec)
			s.Equal(tc.wantErrCode, env.ErrCode)

			if tc.wantCode == http.StatusOK {
				data := env.Data.(map[string]any)
				s.NotEmpty(data["accessToken"])

				var found bool
				for _, cookie := range rec.Result().Cookies() {
					if cookie.Name == "refresh_token" {
						found = true
						s.True(cookie.HttpOnly)
						s.NotEmpty(cookie.Value)
					}
				}
				s.True(found)
			}
		})
	}
}

func (s *AuthPublicTestSuite) TestRefresh() {
	body := `{"name":"Dewi","username":"dewi","email":"dewi@example.com",` +
		`"password":"sup3rsecret"}`
	s.Equal(http.StatusCreated, s.register(body).Code)

	loginCtx, loginRec := s.jsonRequest(
		http.MethodPost,
		"/api/user/login",
		`{"email":"dewi@example.com","password":"sup3rsecret"}`,
	)
	s.Require().NoError(s.handler.Login(loginCtx))
	s.Require().Equal(http.StatusOK, loginRec.Code)

	var refreshToken string
	for _, cookie := range loginRec.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			refreshToken = cookie.Value
		}
	}
	s.Require().NotEmpty(refreshToken)

	s.Run("rotates a valid session", func() {
		ctx, rec := s.jsonRequest(http.MethodPut, "/api/user/refresh-token", "")
		ctx.Request().AddCookie(&http.Cookie{
			Name:  "refresh_token",
			Value: refreshToken,
		})
		s.Require().NoError(s.handler.Refresh(ctx))

		s.Equal(http.StatusOK, rec.Code)
		data := s.envelope(rec).Data.(map[string]any)
		s.NotEmpty(data["accessToken"])
	})

	s.Run("rejects a rotated-out session", func() {
		ctx, rec := s.jsonRequest(http.MethodPut, "/api/user/refresh-token", "")
		ctx.Request().AddCookie(&http.Cookie{
			Name:  "refresh_token",
			Value: refreshToken,
		})
		s.Require().NoError(s.handler.Refresh(ctx))

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(response.ErrCodeInvalidToken, s.envelope(rec).ErrCode)
	})

	s.Run("rejects a garbage token", func() {
		ctx, rec := s.jsonRequest(http.MethodPut, "/api/user/refresh-token", "")
		ctx.Request().AddCookie(&http.Cookie{
			Name:  "refresh_token",
			Value: "not-a-jwt",
		})
		s.Require().NoError(s.handler.Refresh(ctx))

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(response.ErrCodeInvalidToken, s.envelope(rec).ErrCode)
	})

	s.Run("rejects a missing cookie", func() {
		ctx, rec := s.jsonRequest(http.MethodPut, "/api/user/refresh-token", "")
		s.Require().NoError(s.handler.Refresh(ctx))

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AuthPublicTestSuite) TestLogout() {
	body := `{"name":"Dewi","username":"dewi","email":"dewi@example.com",` +
		`"password":"sup3rsecret"}`
	rec := s.register(body)
	s.Require().Equal(http.StatusCreated, rec.Code)
	userID := s.envelope(rec).Data.(map[string]any)["userId"].(string)

	loginCtx, loginRec := s.jsonRequest(
		http.MethodPost,
		"/api/user/login",
		`{"email":"dewi@example.com","password":"sup3rsecret"}`,
	)
	s.Require().NoError(s.handler.Login(loginCtx))

	var refreshToken string
	for _, cookie := range loginRec.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			refreshToken = cookie.Value
		}
	}
	s.Require().NotEmpty(refreshToken)

	ctx, logoutRec := s.jsonRequest(http.MethodPost, "/api/user/logout", "")
	ctx.Request().AddCookie(&http.Cookie{
		Name:  "refresh_token",
		Value: refreshToken,
	})
	ctx.Set(response.ContextKeyUserID, userID)
	s.Require().NoError(s.handler.Logout(ctx))

	s.Equal(http.StatusOK, logoutRec.Code)

	refreshCtx, refreshRec := s.jsonRequest(
		http.MethodPut, "/api/user/refresh-token", "",
	)
	refreshCtx.Request().AddCookie(&http.Cookie{
		Name:  "refresh_token",
		Value: refreshToken,
	})
	s.Require().NoError(s.handler.Refresh(refreshCtx))
	s.Equal(http.StatusBadRequest, refreshRec.Code)
}

func TestAuthPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthPublicTestSuite))
}
