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

// AddWishlist marks a destination wished by the user. Adding twice is a
// no-op.
func (d *Database) AddWishlist(
	ctx context.Context,
	userID string,
	destinationID string,
) error {
	var wishlist Wishlist
	return d.db.WithContext(ctx).
		Where(Wishlist{UserID: userID, DestinationID: destinationID}).
		FirstOrCreate(&wishlist).Error
}

// RemoveWishlist unmarks a destination. Removing a missing entry returns
// ErrNotFound.
func (d *Database) RemoveWishlist(
	ctx context.Context,
	userID string,
	destinationID string,
) error {
	result := d.db.WithContext(ctx).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		Delete(&Wishlist{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// IsWishlisted reports whether the user has wished the destination.
func (d *Database) IsWishlisted(
	ctx context.Context,
	userID string,
	destinationID string,
) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&Wishlist{}).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ListWishlists returns the user's wishlist with the destinations
// preloaded, newest first. Entries whose destination was soft-deleted
// carry a nil Destination.
func (d *Database) ListWishlists(
	ctx context.Context,
	userID string,
) ([]Wishlist, error) {
	var wishlists []Wishlist
	err := d.db.WithContext(ctx).
		Preload("Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&wishlists).Error
	if err != nil {
		return nil, err
	}

	return wishlists, nil
}
