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

package store

import (
	"context"
)

// CreateContact stores a contact form message.
func (d *Database) CreateContact(
	ctx context.Context,
	contact *Contact,
) error {
	return d.db.WithContext(ctx).Create(contact).Error
}

// ListContacts returns a page of contact messages, newest first.
func (d *Database) ListContacts(
	ctx context.Context,
	page int,
	pageSize int,
) ([]Contact, error) {
	if pageSize <= 0 {
		pageSize = 30
	}

	var contacts []Contact
	err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(page * pageSize).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

// CreateNotification stores an in-app notification for a user.
func (d *Database) CreateNotification(
	ctx context.Context,
	notification *Notification,
) error {
	return d.db.WithContext(ctx).Create(notification).Error
}

// ListNotifications returns the user's notifications, newest first.
func (d *Database) ListNotifications(
	ctx context.Context,
	userID string,
) ([]Notification, error) {
	var notifications []Notification
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationsRead marks all the user's notifications read.
func (d *Database) MarkNotificationsRead(
	ctx context.Context,
	userID string,
) error {
	return d.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
