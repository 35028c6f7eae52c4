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
	"log/slog"
)

// Enforcer answers allow/deny queries against the policy store. Evaluation
// is read-only and repeatable; it never mutates the store.
type Enforcer struct {
	store  *Store
	logger *slog.Logger
}

// NewEnforcer creates an Enforcer over the given store.
func NewEnforcer(
	store *Store,
	logger *slog.Logger,
) *Enforcer {
	return &Enforcer{store: store, logger: logger}
}

// Enforce decides whether the subject may perform the action on the object.
//
// The subject's transitive role closure is resolved breadth-first over the
// grouping tuples, then every principal in {subject} ∪ closure is matched
// against the permission tuples. A matching deny beats any number of
// matching allows; with no match at all the answer is deny.
func (e *Enforcer) Enforce(
	subject Subject,
	object Object,
	action string,
) bool {
	objectToken := object.Encode()

	allowed := false
	for _, principal := range e.closure(subject.Encode()) {
		for _, rule := range e.store.RulesFor(principal) {
			if !ruleMatches(rule, objectToken, action) {
				continue
			}
			if rule.Deny {
				return false
			}
			allowed = true
		}
	}

	return allowed
}

// closure returns the start token followed by every role token reachable
// through grouping tuples. The visited set makes traversal terminate even if
// a malformed grouping graph contains a cycle.
func (e *Enforcer) closure(
	start string,
) []string {
	visited := map[string]bool{start: true}
	order := []string{start}

	for i := 0; i < len(order); i++ {
		for _, role := range e.store.DirectRoleTokens(order[i]) {
			if visited[role] {
				continue
			}
			visited[role] = true
			order = append(order, role)
		}
	}

	return order
}

// ruleMatches reports whether a stored tuple applies to the queried object
// and action. A stored wildcard matches any value; a queried wildcard object
// (global actions like "admin" or "create") only matches wildcard tuples,
// since objectToken equality then requires the literal "*".
func ruleMatches(
	rule StoredRule,
	objectToken string,
	action string,
) bool {
	if rule.Object != wildcard && rule.Object != objectToken {
		return false
	}

	return rule.Action == ActionAny || rule.Action == action
}
