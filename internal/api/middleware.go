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
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/telusuri/telusuri/internal/api/response"
	"github.com/telusuri/telusuri/internal/authtoken"
	"github.com/telusuri/telusuri/internal/authz"
)

// Authorization actions checked by the ownership gate.
const (
	authzActionEdit   = authz.ActionEdit
	authzActionDelete = authz.ActionDelete
)

// requireAuth validates the bearer access token and injects the user ID
// into the request context.
func (s *Server) requireAuth(
	next echo.HandlerFunc,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, ok := s.bearerClaims(ctx)
		if !ok {
			return response.Fail(
				ctx,
				http.StatusUnauthorized,
				"Invalid token",
				response.ErrCodeInvalidToken,
			)
		}

		ctx.Set(response.ContextKeyUserID, claims.UserID)

		return next(ctx)
	}
}

// optionalAuth injects the user ID when a valid bearer token is present
// and lets anonymous requests through.
func (s *Server) optionalAuth(
	next echo.HandlerFunc,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if claims, ok := s.bearerClaims(ctx); ok {
			ctx.Set(response.ContextKeyUserID, claims.UserID)
		}

		return next(ctx)
	}
}

// bearerClaims parses and validates the Authorization header.
func (s *Server) bearerClaims(
	ctx echo.Context,
) (*authtoken.CustomClaims, bool) {
	authHeader := ctx.Request().Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := s.token.Validate(
		tokenString,
		s.appConfig.API.Security.SigningKey,
		authtoken.KindAccess,
	)
	if err != nil {
		return nil, false
	}

	return claims, true
}

// rejectBanned refuses requests from users carrying the literal banned
// tag. Direct membership, not the transitive closure: banned is a tag on
// the user, never inherited.
func (s *Server) rejectBanned(
	next echo.HandlerFunc,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		userID := response.UserID(ctx)
		banned := s.engine.Store.HasRoleForUser(
			authz.UserSubject(userID),
			authz.RoleBanned,
		)
		if banned {
			return response.Fail(
				ctx,
				http.StatusUnauthorized,
				"Account is suspended",
				response.ErrCodeAccountSuspended,
			)
		}

		return next(ctx)
	}
}

// requireAdmin gates the admin console behind the global admin action.
func (s *Server) requireAdmin(
	next echo.HandlerFunc,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		userID := response.UserID(ctx)
		allowed := s.engine.Enforcer.Enforce(
			authz.UserSubject(userID),
			authz.Wildcard,
			authz.ActionAdmin,
		)
		if !allowed {
			return response.Fail(
				ctx,
				http.StatusForbidden,
				"User is not admin",
				response.ErrCodeNotAdmin,
			)
		}

		return next(ctx)
	}
}

// requireWriter gates post creation behind the global create action.
func (s *Server) requireWriter(
	next echo.HandlerFunc,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		userID := response.UserID(ctx)
		allowed := s.engine.Enforcer.Enforce(
			authz.UserSubject(userID),
			authz.Wildcard,
			authz.ActionCreate,
		)
		if !allowed {
			return response.Fail(
				ctx,
				http.StatusForbidden,
				"User is not writter",
				response.ErrCodeNotWriter,
			)
		}

		return next(ctx)
	}
}

// requireDestinationOwner gates mutation of one destination behind the
// resource-scoped action. Admins pass through their allow-all rule.
func (s *Server) requireDestinationOwner(
	action string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID := response.UserID(ctx)
			postID := ctx.Param("postId")
			if postID == "" {
				return response.Fail(
					ctx,
					http.StatusBadRequest,
					"Missing post id",
					response.ErrCodeInvalidField,
				)
			}

			allowed := s.engine.Enforcer.Enforce(
				authz.UserSubject(userID),
				authz.ResourceObject(authz.ResourceTypeDestination, postID),
				action,
			)
			if !allowed {
				message := "Can not edit destination"
				if action == authzActionDelete {
					message = "Can not delete destination"
				}
				return response.Fail(
					ctx,
					http.StatusForbidden,
					message,
					response.ErrCodeNotOwner,
				)
			}

			return next(ctx)
		}
	}
}
