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

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rule type discriminators in the policy_rules table.
const (
	ptypePolicy   = "p"
	ptypeGrouping = "g"
)

// Rule is the persisted form of one tuple. Permission tuples ("p") carry
// effect, subject, object, and action; grouping tuples ("g") carry the
// subject and the inherited role token in the object column.
type Rule struct {
	ID      uint   `gorm:"primarykey"`
	PType   string `gorm:"column:ptype;size:8;uniqueIndex:idx_policy_rule_tuple,priority:1"`
	Effect  string `gorm:"size:8;uniqueIndex:idx_policy_rule_tuple,priority:2"`
	Subject string `gorm:"size:128;index:idx_policy_rule_subject;uniqueIndex:idx_policy_rule_tuple,priority:3"`
	Object  string `gorm:"size:128;index:idx_policy_rule_object;uniqueIndex:idx_policy_rule_tuple,priority:4"`
	Action  string `gorm:"size:64;uniqueIndex:idx_policy_rule_tuple,priority:5"`
}

// TableName implements the gorm table-name convention.
func (Rule) TableName() string { return "policy_rules" }

// Policy is one permission tuple in the store's public API.
type Policy struct {
	// Effect is EffectAllow or EffectDeny; empty defaults to allow.
	Effect  string
	Subject Subject
	Object  Object
	Action  string
}

// StoredRule is a permission tuple as seen by the evaluator.
type StoredRule struct {
	Object string
	Action string
	Deny   bool
}

// Store is the durable, queryable collection of permission and grouping
// tuples. All rules live in one table and are mirrored into an in-memory
// index at load time; mutations commit to the database first and update the
// index only on success, so a failed write never skews a decision toward
// allow.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger

	mu        sync.RWMutex
	policies  map[string][]StoredRule
	groupings map[string][]string
}

// NewStore creates a Store. Call Load before evaluating.
func NewStore(
	db *gorm.DB,
	logger *slog.Logger,
) *Store {
	return &Store{
		db:        db,
		logger:    logger,
		policies:  map[string][]StoredRule{},
		groupings: map[string][]string{},
	}
}

// Migrate creates the policy_rules table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Rule{})
}

// Load replaces the in-memory index with the full persisted rule set.
func (s *Store) Load(
	ctx context.Context,
) error {
	var rules []Rule
	if err := s.db.WithContext(ctx).Find(&rules).Error; err != nil {
		return fmt.Errorf("loading policy rules: %w", err)
	}

	policies := map[string][]StoredRule{}
	groupings := map[string][]string{}
	for _, r := range rules {
		switch r.PType {
		case ptypePolicy:
			policies[r.Subject] = append(policies[r.Subject], StoredRule{
				Object: r.Object,
				Action: r.Action,
				Deny:   r.Effect == EffectDeny,
			})
		case ptypeGrouping:
			groupings[r.Subject] = append(groupings[r.Subject], r.Object)
		default:
			s.logger.Warn("skipping rule with unknown ptype",
				slog.String("ptype", r.PType),
				slog.Uint64("id", uint64(r.ID)),
			)
		}
	}

	s.mu.Lock()
	s.policies = policies
	s.groupings = groupings
	s.mu.Unlock()

	s.logger.Info("policy rules loaded", slog.Int("count", len(rules)))

	return nil
}

// AddPolicy inserts one permission tuple. Re-adding an existing tuple is a
// no-op. An empty effect defaults to allow.
func (s *Store) AddPolicy(
	ctx context.Context,
	effect string,
	subject Subject,
	object Object,
	action string,
) error {
	return s.AddPolicies(ctx, []Policy{
		{Effect: effect, Subject: subject, Object: object, Action: action},
	})
}

// AddPolicies inserts a batch of permission tuples in a single transaction:
// either every tuple of the batch is committed or none is, so a concurrent
// evaluator never observes half of a multi-tuple grant.
func (s *Store) AddPolicies(
	ctx context.Context,
	policies []Policy,
) error {
	if len(policies) == 0 {
		return nil
	}

	rows := make([]Rule, 0, len(policies))
	for _, p := range policies {
		effect := p.Effect
		if effect == "" {
			effect = EffectAllow
		}
		rows = append(rows, Rule{
			PType:   ptypePolicy,
			Effect:  effect,
			Subject: p.Subject.Encode(),
			Object:  p.Object.Encode(),
			Action:  p.Action,
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("adding policy rules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		stored := StoredRule{
			Object: row.Object,
			Action: row.Action,
			Deny:   row.Effect == EffectDeny,
		}
		if !containsRule(s.policies[row.Subject], stored) {
			s.policies[row.Subject] = append(s.policies[row.Subject], stored)
		}
	}

	return nil
}

// RemovePolicy deletes a permission tuple regardless of effect. Removing an
// absent tuple is a no-op.
func (s *Store) RemovePolicy(
	ctx context.Context,
	subject Subject,
	object Object,
	action string,
) error {
	subjectToken := subject.Encode()
	objectToken := object.Encode()

	err := s.db.WithContext(ctx).
		Where("ptype = ? AND subject = ? AND object = ? AND action = ?",
			ptypePolicy, subjectToken, objectToken, action).
		Delete(&Rule{}).Error
	if err != nil {
		return fmt.Errorf("removing policy rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.policies[subjectToken][:0]
	for _, r := range s.policies[subjectToken] {
		if r.Object != objectToken || r.Action != action {
			kept = append(kept, r)
		}
	}
	s.policies[subjectToken] = kept

	return nil
}

// RemovePoliciesForObject deletes every permission tuple whose object is the
// given resource, for any subject and any effect. Used when a resource is
// deleted, so ownership grants cannot outlive what they grant.
func (s *Store) RemovePoliciesForObject(
	ctx context.Context,
	object Object,
) error {
	objectToken := object.Encode()

	err := s.db.WithContext(ctx).
		Where("ptype = ? AND object = ?", ptypePolicy, objectToken).
		Delete(&Rule{}).Error
	if err != nil {
		return fmt.Errorf("removing policy rules for object: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for subject, rules := range s.policies {
		kept := rules[:0]
		for _, r := range rules {
			if r.Object != objectToken {
				kept = append(kept, r)
			}
		}
		s.policies[subject] = kept
	}

	return nil
}

// AddRoleForUser adds the grouping tuple "subject inherits role". Re-adding
// is a no-op. A subject cannot inherit itself; deeper cycles are not
// structurally rejected, the evaluator's visited set guards traversal.
func (s *Store) AddRoleForUser(
	ctx context.Context,
	subject Subject,
	role string,
) error {
	subjectToken := subject.Encode()
	roleToken := RoleSubject(role).Encode()
	if subjectToken == roleToken {
		return fmt.Errorf("%w: %s", ErrSelfInheritance, roleToken)
	}

	row := Rule{PType: ptypeGrouping, Subject: subjectToken, Object: roleToken}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("adding grouping rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.groupings[subjectToken] {
		if existing == roleToken {
			return nil
		}
	}
	s.groupings[subjectToken] = append(s.groupings[subjectToken], roleToken)

	return nil
}

// DeleteRoleForUser removes the grouping tuple "subject inherits role".
// Removing an absent tuple is a no-op.
func (s *Store) DeleteRoleForUser(
	ctx context.Context,
	subject Subject,
	role string,
) error {
	subjectToken := subject.Encode()
	roleToken := RoleSubject(role).Encode()

	err := s.db.WithContext(ctx).
		Where("ptype = ? AND subject = ? AND object = ?",
			ptypeGrouping, subjectToken, roleToken).
		Delete(&Rule{}).Error
	if err != nil {
		return fmt.Errorf("removing grouping rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.groupings[subjectToken][:0]
	for _, existing := range s.groupings[subjectToken] {
		if existing != roleToken {
			kept = append(kept, existing)
		}
	}
	s.groupings[subjectToken] = kept

	return nil
}

// HasRoleForUser reports direct, non-transitive membership. Use it where
// inheritance is intentionally not wanted: the literal banned tag, or the
// literal super_admin check.
func (s *Store) HasRoleForUser(
	subject Subject,
	role string,
) bool {
	subjectToken := subject.Encode()
	roleToken := RoleSubject(role).Encode()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.groupings[subjectToken] {
		if existing == roleToken {
			return true
		}
	}

	return false
}

// GetRolesForUser returns the subject's directly assigned role names.
func (s *Store) GetRolesForUser(
	subject Subject,
) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := s.groupings[subject.Encode()]
	roles := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if parsed, err := ParseSubject(token); err == nil {
			roles = append(roles, parsed.id)
		}
	}

	return roles
}

// DirectRoleTokens returns the subject token's direct grouping targets.
func (s *Store) DirectRoleTokens(
	subjectToken string,
) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := s.groupings[subjectToken]
	out := make([]string, len(tokens))
	copy(out, tokens)

	return out
}

// RulesFor returns the permission tuples whose subject is the given token.
func (s *Store) RulesFor(
	subjectToken string,
) []StoredRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := s.policies[subjectToken]
	out := make([]StoredRule, len(rules))
	copy(out, rules)

	return out
}

// AllRules returns every persisted rule, ordered by id. Used by the policy
// CLI, not by the evaluation path.
func (s *Store) AllRules(
	ctx context.Context,
) ([]Rule, error) {
	var rules []Rule
	if err := s.db.WithContext(ctx).Order("id").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("listing policy rules: %w", err)
	}

	return rules, nil
}

func containsRule(
	rules []StoredRule,
	rule StoredRule,
) bool {
	for _, r := range rules {
		if r == rule {
			return true
		}
	}

	return false
}
