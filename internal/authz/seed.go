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

package authz

import (
	"context"
	"log/slog"
)

// Seed installs the fixed role hierarchy and grants the admin role to the
// designated administrator users. Every write is idempotent, so seeding can
// run on each deployment.
//
// The hierarchy:
//
//	role::admin        allow * *
//	role::banned       deny  * *
//	role::writer       allow * create
//	role::super_admin  inherits role::admin
//	role::admin        inherits role::writer
func Seed(
	ctx context.Context,
	store *Store,
	adminUserIDs []string,
	logger *slog.Logger,
) error {
	err := store.AddPolicies(ctx, []Policy{
		{Subject: RoleSubject(RoleAdmin), Object: Wildcard, Action: ActionAny},
		{Effect: EffectDeny, Subject: RoleSubject(RoleBanned), Object: Wildcard, Action: ActionAny},
		{Subject: RoleSubject(RoleWriter), Object: Wildcard, Action: ActionCreate},
	})
	if err != nil {
		return err
	}

	groupings := []struct {
		subject Subject
		role    string
	}{
		{RoleSubject(RoleSuperAdmin), RoleAdmin},
		{RoleSubject(RoleAdmin), RoleWriter},
	}
	for _, g := range groupings {
		if err := store.AddRoleForUser(ctx, g.subject, g.role); err != nil {
			return err
		}
	}

	for _, id := range adminUserIDs {
		if err := store.AddRoleForUser(ctx, UserSubject(id), RoleAdmin); err != nil {
			return err
		}
		logger.Info("admin role granted", slog.String("user", id))
	}

	return nil
}
