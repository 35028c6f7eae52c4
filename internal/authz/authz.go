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

// Package authz implements the policy enforcement engine: a durable store of
// allow/deny rules and role-inheritance edges, an evaluator resolving the
// transitive role closure with deny-overrides-allow semantics, and a grant
// lifecycle manager keeping rules in sync with business entities.
package authz

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// Engine bundles the policy store, the enforcement evaluator, and the grant
// lifecycle manager. Construct one at startup and inject it everywhere a
// decision or an entitlement mutation is needed.
type Engine struct {
	Store    *Store
	Enforcer *Enforcer
	Manager  *Manager
}

// New creates an Engine backed by the given database and loads the full rule
// set into memory.
func New(
	ctx context.Context,
	db *gorm.DB,
	logger *slog.Logger,
) (*Engine, error) {
	store := NewStore(db, logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	enforcer := NewEnforcer(store, logger)

	return &Engine{
		Store:    store,
		Enforcer: enforcer,
		Manager:  NewManager(store, enforcer, logger),
	}, nil
}
