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
	"fmt"
	"log/slog"
	"sync"
)

// promotableRoles are the roles an admin may assign or remove through the
// lifecycle manager. super_admin is deliberately absent: supervisors are
// created at seed time only. banned moves through Ban/Unban.
var promotableRoles = map[string]bool{
	RoleWriter: true,
	RoleAdmin:  true,
}

// Manager keeps the policy store's tuples synchronized with business-entity
// lifecycle events: resource creation/deletion and admin role actions.
//
// Its mutex serializes every entitlement mutation, so a check-then-act
// sequence (the super_admin guard) cannot race another promote, demote, or
// ban. Evaluation stays lock-free on this mutex; it only needs the store's
// read consistency.
type Manager struct {
	store    *Store
	enforcer *Enforcer
	logger   *slog.Logger

	mu sync.Mutex
}

// NewManager creates a Manager over the given store and enforcer.
func NewManager(
	store *Store,
	enforcer *Enforcer,
	logger *slog.Logger,
) *Manager {
	return &Manager{store: store, enforcer: enforcer, logger: logger}
}

// OnResourceCreated grants the owner edit and delete on the new resource.
// Both tuples are written in one transaction; repeating the call for the
// same resource changes nothing.
func (m *Manager) OnResourceCreated(
	ctx context.Context,
	owner Subject,
	resourceType string,
	resourceID string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	object := ResourceObject(resourceType, resourceID)
	err := m.store.AddPolicies(ctx, []Policy{
		{Subject: owner, Object: object, Action: ActionEdit},
		{Subject: owner, Object: object, Action: ActionDelete},
	})
	if err != nil {
		return fmt.Errorf("issuing ownership grant: %w", err)
	}

	m.logger.Info("ownership grant issued",
		slog.String("owner", owner.Encode()),
		slog.String("object", object.Encode()),
	)

	return nil
}

// OnResourceDeleted retracts every tuple scoped to the resource, whatever
// the subject, so ownership grants never outlive the resource.
func (m *Manager) OnResourceDeleted(
	ctx context.Context,
	resourceType string,
	resourceID string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	object := ResourceObject(resourceType, resourceID)
	if err := m.store.RemovePoliciesForObject(ctx, object); err != nil {
		return fmt.Errorf("retracting ownership grant: %w", err)
	}

	m.logger.Info("resource grants retracted",
		slog.String("object", object.Encode()),
	)

	return nil
}

// Promote assigns a role from the ladder to a user. Returns
// ErrSuperAdminImmutable when the target transitively holds super_admin and
// ErrUnknownRole for roles outside the ladder.
func (m *Manager) Promote(
	ctx context.Context,
	userID string,
	toRole string,
) error {
	if !promotableRoles[toRole] {
		return fmt.Errorf("%w: %q", ErrUnknownRole, toRole)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	subject := UserSubject(userID)
	if m.holdsSuperAdmin(subject) {
		return ErrSuperAdminImmutable
	}

	if err := m.store.AddRoleForUser(ctx, subject, toRole); err != nil {
		return err
	}

	m.logger.Info("user promoted",
		slog.String("subject", subject.Encode()),
		slog.String("role", toRole),
	)

	return nil
}

// Demote removes a role from a user, with the same super_admin guard.
func (m *Manager) Demote(
	ctx context.Context,
	userID string,
	fromRole string,
) error {
	if !promotableRoles[fromRole] {
		return fmt.Errorf("%w: %q", ErrUnknownRole, fromRole)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	subject := UserSubject(userID)
	if m.holdsSuperAdmin(subject) {
		return ErrSuperAdminImmutable
	}

	if err := m.store.DeleteRoleForUser(ctx, subject, fromRole); err != nil {
		return err
	}

	m.logger.Info("user demoted",
		slog.String("subject", subject.Encode()),
		slog.String("role", fromRole),
	)

	return nil
}

// Ban tags the user with the banned role. The role's deny-all tuple then
// overrides every allow the user holds, directly or by inheritance, without
// touching those grants. Side effects outside the engine (revoking sessions,
// notifying the user) are the caller's responsibility.
func (m *Manager) Ban(
	ctx context.Context,
	userID string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subject := UserSubject(userID)
	if m.holdsSuperAdmin(subject) {
		return ErrSuperAdminImmutable
	}

	if err := m.store.AddRoleForUser(ctx, subject, RoleBanned); err != nil {
		return err
	}

	m.logger.Info("user banned", slog.String("subject", subject.Encode()))

	return nil
}

// Unban removes the banned tag; earlier grants become effective again.
func (m *Manager) Unban(
	ctx context.Context,
	userID string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subject := UserSubject(userID)
	if err := m.store.DeleteRoleForUser(ctx, subject, RoleBanned); err != nil {
		return err
	}

	m.logger.Info("user unbanned", slog.String("subject", subject.Encode()))

	return nil
}

// holdsSuperAdmin reports whether the subject's transitive closure contains
// the super_admin role.
func (m *Manager) holdsSuperAdmin(
	subject Subject,
) bool {
	target := RoleSubject(RoleSuperAdmin).Encode()
	for _, principal := range m.enforcer.closure(subject.Encode()) {
		if principal == target {
			return true
		}
	}

	return false
}
