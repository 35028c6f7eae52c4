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
	"fmt"
	"strings"
)

// Built-in role names.
const (
	RoleUser       = "user"
	RoleWriter     = "writer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleBanned     = "banned"
)

// Actions understood by the engine. ActionAny only appears in stored rules
// (e.g. the admin allow-all rule), never in queries.
const (
	ActionAny    = "*"
	ActionAdmin  = "admin"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Rule effects.
const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

// Resource types used in object tokens.
const (
	ResourceTypeDestination = "destination"
)

const (
	userPrefix     = "user::"
	rolePrefix     = "role::"
	resourcePrefix = "resource:"
	resourceSep    = "::"
	wildcard       = "*"
)

type subjectKind uint8

const (
	subjectUser subjectKind = iota
	subjectRole
)

// Subject identifies the principal a rule applies to: a concrete user or a
// role. The zero value is not a valid subject.
type Subject struct {
	kind subjectKind
	id   string
}

// UserSubject returns the subject for a concrete user. Panics on an empty
// id: token construction from a missing identifier is a caller bug, not a
// runtime condition to recover from.
func UserSubject(
	id string,
) Subject {
	if id == "" {
		panic("authz: empty user id in subject token")
	}

	return Subject{kind: subjectUser, id: id}
}

// RoleSubject returns the subject for a role. Panics on an empty name.
func RoleSubject(
	name string,
) Subject {
	if name == "" {
		panic("authz: empty role name in subject token")
	}

	return Subject{kind: subjectRole, id: name}
}

// Encode returns the canonical wire token ("user::<id>" or "role::<name>").
// The encoding is injective: the separator never occurs in a kind prefix, so
// distinct (kind, id) pairs cannot collide.
func (s Subject) Encode() string {
	if s.kind == subjectRole {
		return rolePrefix + s.id
	}

	return userPrefix + s.id
}

// IsRole reports whether the subject names a role rather than a user.
func (s Subject) IsRole() bool { return s.kind == subjectRole }

// ParseSubject decodes a wire token produced by Encode.
func ParseSubject(
	raw string,
) (Subject, error) {
	switch {
	case strings.HasPrefix(raw, userPrefix) && len(raw) > len(userPrefix):
		return Subject{kind: subjectUser, id: raw[len(userPrefix):]}, nil
	case strings.HasPrefix(raw, rolePrefix) && len(raw) > len(rolePrefix):
		return Subject{kind: subjectRole, id: raw[len(rolePrefix):]}, nil
	}

	return Subject{}, fmt.Errorf("%w: %q", ErrMalformedToken, raw)
}

// Object identifies what a rule applies to: the wildcard (any resource, also
// the canonical object of global actions) or one concrete resource instance.
// The zero value is the wildcard.
type Object struct {
	typ string
	id  string
}

// Wildcard is the object matching any resource.
var Wildcard = Object{}

// ResourceObject returns the object for one resource instance. Panics when
// the type or id is empty.
func ResourceObject(
	resourceType string,
	id string,
) Object {
	if resourceType == "" || id == "" {
		panic("authz: empty resource type or id in object token")
	}

	return Object{typ: resourceType, id: id}
}

// Encode returns the canonical wire token ("*" or "resource:<type>::<id>").
func (o Object) Encode() string {
	if o.typ == "" {
		return wildcard
	}

	return resourcePrefix + o.typ + resourceSep + o.id
}

// IsWildcard reports whether the object is the wildcard.
func (o Object) IsWildcard() bool { return o.typ == "" }

// ParseObject decodes a wire token produced by Encode.
func ParseObject(
	raw string,
) (Object, error) {
	if raw == wildcard {
		return Wildcard, nil
	}

	rest, ok := strings.CutPrefix(raw, resourcePrefix)
	if !ok {
		return Object{}, fmt.Errorf("%w: %q", ErrMalformedToken, raw)
	}

	typ, id, ok := strings.Cut(rest, resourceSep)
	if !ok || typ == "" || id == "" {
		return Object{}, fmt.Errorf("%w: %q", ErrMalformedToken, raw)
	}

	return Object{typ: typ, id: id}, nil
}
