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

package authz_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/telusuri/telusuri/internal/authz"
)

type EnginePublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	db     *gorm.DB
	engine *authz.Engine
}

func (s *EnginePublicTestSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	// A single connection keeps the in-memory database alive and serializes
	// concurrent writers.
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := authz.NewStore(db, logger)
	s.Require().NoError(store.Migrate())

	engine, err := authz.New(s.ctx, db, logger)
	s.Require().NoError(err)
	s.engine = engine
}

func (s *EnginePublicTestSuite) seed(adminUserIDs ...string) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(authz.Seed(s.ctx, s.engine.Store, adminUserIDs, logger))
}

func (s *EnginePublicTestSuite) ruleCount() int64 {
	var count int64
	s.Require().NoError(s.db.Model(&authz.Rule{}).Count(&count).Error)
	return count
}

func (s *EnginePublicTestSuite) TestDefaultDeny() {
	s.seed()

	allowed := s.engine.Enforcer.Enforce(
		authz.UserSubject("1"),
		authz.Wildcard,
		authz.ActionAdmin,
	)
	s.False(allowed)

	allowed = s.engine.Enforcer.Enforce(
		authz.UserSubject("1"),
		authz.ResourceObject("destination", "7"),
		authz.ActionEdit,
	)
	s.False(allowed)
}

func (s *EnginePublicTestSuite) TestDenyOverridesAllow() {
	subject := authz.UserSubject("9")
	object := authz.ResourceObject("destination", "3")

	s.Require().NoError(s.engine.Store.AddPolicy(
		s.ctx, authz.EffectAllow, subject, object, authz.ActionEdit,
	))
	s.Require().NoError(s.engine.Store.AddPolicy(
		s.ctx, authz.EffectDeny, subject, object, authz.ActionEdit,
	))

	s.False(s.engine.Enforcer.Enforce(subject, object, authz.ActionEdit))
}

func (s *EnginePublicTestSuite) TestRoleTransitivity() {
	s.seed()
	s.Require().NoError(s.engine.Store.AddRoleForUser(
		s.ctx, authz.UserSubject("5"), authz.RoleSuperAdmin,
	))

	tests := []struct {
		name   string
		object authz.Object
		action string
	}{
		{name: "admin action through super_admin", object: authz.Wildcard, action: authz.ActionAdmin},
		{name: "create through super_admin to admin to writer", object: authz.Wildcard, action: authz.ActionCreate},
		{name: "resource action through admin allow-all", object: authz.ResourceObject("destination", "1"), action: authz.ActionDelete},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.True(s.engine.Enforcer.Enforce(authz.UserSubject("5"), tt.object, tt.action))
		})
	}
}

func (s *EnginePublicTestSuite) TestIdempotentGrantIssuance() {
	owner := authz.UserSubject("2")

	s.Require().NoError(s.engine.Manager.OnResourceCreated(s.ctx, owner, "destination", "10"))
	after := s.ruleCount()

	s.Require().NoError(s.engine.Manager.OnResourceCreated(s.ctx, owner, "destination", "10"))
	s.Equal(after, s.ruleCount())

	object := authz.ResourceObject("destination", "10")
	s.True(s.engine.Enforcer.Enforce(owner, object, authz.ActionEdit))
	s.True(s.engine.Enforcer.Enforce(owner, object, authz.ActionDelete))
}

func (s *EnginePublicTestSuite) TestBanSupersedesAdmin() {
	s.seed("77")

	subject := authz.UserSubject("77")
	s.True(s.engine.Enforcer.Enforce(subject, authz.Wildcard, authz.ActionAdmin))

	s.Require().NoError(s.engine.Manager.Ban(s.ctx, "77"))
	s.False(s.engine.Enforcer.Enforce(subject, authz.Wildcard, authz.ActionAdmin))
	s.False(s.engine.Enforcer.Enforce(subject, authz.Wildcard, authz.ActionCreate))

	// The admin grouping tuple is untouched; only the banned tag was added.
	s.True(s.engine.Store.HasRoleForUser(subject, authz.RoleAdmin))

	s.Require().NoError(s.engine.Manager.Unban(s.ctx, "77"))
	s.True(s.engine.Enforcer.Enforce(subject, authz.Wildcard, authz.ActionAdmin))
}

func (s *EnginePublicTestSuite) TestSuperAdminGuard() {
	s.seed()
	s.Require().NoError(s.engine.Store.AddRoleForUser(
		s.ctx, authz.UserSubject("1"), authz.RoleSuperAdmin,
	))
	before := s.ruleCount()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "demote", call: func() error { return s.engine.Manager.Demote(s.ctx, "1", authz.RoleAdmin) }},
		{name: "promote", call: func() error { return s.engine.Manager.Promote(s.ctx, "1", authz.RoleWriter) }},
		{name: "ban", call: func() error { return s.engine.Manager.Ban(s.ctx, "1") }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.ErrorIs(tt.call(), authz.ErrSuperAdminImmutable)
			s.Equal(before, s.ruleCount())
		})
	}
}

func (s *EnginePublicTestSuite) TestPromoteRejectsUnknownRole() {
	s.seed()

	s.ErrorIs(s.engine.Manager.Promote(s.ctx, "4", "root"), authz.ErrUnknownRole)
	s.ErrorIs(s.engine.Manager.Promote(s.ctx, "4", authz.RoleSuperAdmin), authz.ErrUnknownRole)
	s.ErrorIs(s.engine.Manager.Demote(s.ctx, "4", authz.RoleBanned), authz.ErrUnknownRole)
}

func (s *EnginePublicTestSuite) TestGrantRetractionOnResourceDelete() {
	owner := authz.UserSubject("2")
	object := authz.ResourceObject("destination", "11")

	s.Require().NoError(s.engine.Manager.OnResourceCreated(s.ctx, owner, "destination", "11"))
	s.True(s.engine.Enforcer.Enforce(owner, object, authz.ActionEdit))

	s.Require().NoError(s.engine.Manager.OnResourceDeleted(s.ctx, "destination", "11"))

	s.False(s.engine.Enforcer.Enforce(owner, object, authz.ActionEdit))
	s.False(s.engine.Enforcer.Enforce(owner, object, authz.ActionDelete))

	var count int64
	s.Require().NoError(s.db.Model(&authz.Rule{}).
		Where("object = ?", object.Encode()).
		Count(&count).Error)
	s.Zero(count)
}

func (s *EnginePublicTestSuite) TestCycleGuardTerminates() {
	// Self edges are rejected outright.
	s.ErrorIs(
		s.engine.Store.AddRoleForUser(s.ctx, authz.RoleSubject("a"), "a"),
		authz.ErrSelfInheritance,
	)

	// A two-role cycle is not structurally rejected; evaluation must still
	// terminate and answer.
	s.Require().NoError(s.engine.Store.AddRoleForUser(s.ctx, authz.RoleSubject("a"), "b"))
	s.Require().NoError(s.engine.Store.AddRoleForUser(s.ctx, authz.RoleSubject("b"), "a"))
	s.Require().NoError(s.engine.Store.AddPolicy(
		s.ctx, authz.EffectAllow, authz.RoleSubject("b"), authz.Wildcard, authz.ActionCreate,
	))
	s.Require().NoError(s.engine.Store.AddRoleForUser(s.ctx, authz.UserSubject("6"), "a"))

	s.True(s.engine.Enforcer.Enforce(authz.UserSubject("6"), authz.Wildcard, authz.ActionCreate))
	s.False(s.engine.Enforcer.Enforce(authz.UserSubject("6"), authz.Wildcard, authz.ActionAdmin))
}

func (s *EnginePublicTestSuite) TestDirectMembershipIsNotTransitive() {
	s.seed()
	s.Require().NoError(s.engine.Store.AddRoleForUser(
		s.ctx, authz.UserSubject("8"), authz.RoleSuperAdmin,
	))

	subject := authz.UserSubject("8")
	s.True(s.engine.Store.HasRoleForUser(subject, authz.RoleSuperAdmin))
	// admin is inherited, not directly assigned.
	s.False(s.engine.Store.HasRoleForUser(subject, authz.RoleAdmin))
	s.Equal([]string{authz.RoleSuperAdmin}, s.engine.Store.GetRolesForUser(subject))
}

func (s *EnginePublicTestSuite) TestSeedIsIdempotent() {
	s.seed("1")
	after := s.ruleCount()

	s.seed("1")
	s.Equal(after, s.ruleCount())
}

func (s *EnginePublicTestSuite) TestEndToEndScenario() {
	s.seed("100")
	s.Require().NoError(s.engine.Manager.Promote(s.ctx, "1", authz.RoleWriter))

	// U1 posts destination D1 and owns it; unrelated U2 does not.
	u1 := authz.UserSubject("1")
	u2 := authz.UserSubject("2")
	d1 := authz.ResourceObject("destination", "1")

	s.True(s.engine.Enforcer.Enforce(u1, authz.Wildcard, authz.ActionCreate))
	s.Require().NoError(s.engine.Manager.OnResourceCreated(s.ctx, u1, "destination", "1"))

	s.True(s.engine.Enforcer.Enforce(u1, d1, authz.ActionEdit))
	s.False(s.engine.Enforcer.Enforce(u2, d1, authz.ActionEdit))

	// Admin promotes U2 to admin.
	s.Require().NoError(s.engine.Manager.Promote(s.ctx, "2", authz.RoleAdmin))
	s.True(s.engine.Enforcer.Enforce(u2, authz.Wildcard, authz.ActionAdmin))

	// Admin bans U2: admin grouping stays, capability goes.
	s.Require().NoError(s.engine.Manager.Ban(s.ctx, "2"))
	s.False(s.engine.Enforcer.Enforce(u2, authz.Wildcard, authz.ActionAdmin))
	s.True(s.engine.Store.HasRoleForUser(u2, authz.RoleAdmin))
}

func (s *EnginePublicTestSuite) TestConcurrentEnforceAndGrant() {
	s.seed()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			owner := authz.UserSubject(fmt.Sprintf("%d", n))
			id := fmt.Sprintf("%d", n)
			s.NoError(s.engine.Manager.OnResourceCreated(s.ctx, owner, "destination", id))

			object := authz.ResourceObject("destination", id)
			edit := s.engine.Enforcer.Enforce(owner, object, authz.ActionEdit)
			del := s.engine.Enforcer.Enforce(owner, object, authz.ActionDelete)
			// After the grant both halves are visible together.
			s.True(edit)
			s.True(del)
		}(i)
	}
	wg.Wait()
}

func TestEnginePublicTestSuite(t *testing.T) {
	suite.Run(t, new(EnginePublicTestSuite))
}
