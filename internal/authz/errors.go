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

import "errors"

var (
	// ErrSuperAdminImmutable is returned when a promote, demote, or ban
	// targets a user who transitively holds the super_admin role. This is a
	// normal admin-workflow outcome, surfaced as a domain error.
	ErrSuperAdminImmutable = errors.New("user holds super_admin and cannot be modified")

	// ErrUnknownRole is returned when a promote or demote names a role the
	// ladder does not contain.
	ErrUnknownRole = errors.New("unknown role")

	// ErrSelfInheritance is returned when a grouping edge would make a
	// subject inherit itself.
	ErrSelfInheritance = errors.New("subject cannot inherit itself")

	// ErrMalformedToken is returned when a wire token cannot be decoded.
	ErrMalformedToken = errors.New("malformed policy token")
)
