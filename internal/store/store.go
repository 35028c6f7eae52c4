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

// Package store persists the business entities: users, destinations,
// ratings, wishlists, contact messages, notifications, and refresh
// tokens.
package store

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Database wraps the gorm handle with typed queries.
type Database struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New factory to create a new Database instance.
func New(
	db *gorm.DB,
	logger *slog.Logger,
) *Database {
	return &Database{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the business tables.
func (d *Database) Migrate() error {
	return d.db.AutoMigrate(
		&User{},
		&PersonalData{},
		&Interest{},
		&Destination{},
		&Rating{},
		&Wishlist{},
		&Contact{},
		&Notification{},
		&RefreshToken{},
		&DanglingImage{},
	)
}

// notFound maps gorm's sentinel onto the store's.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}
