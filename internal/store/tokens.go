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
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HashToken derives the stored digest of a refresh token. Raw tokens are
// never persisted.
func HashToken(
	token string,
) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// SaveRefreshToken persists a refresh session.
func (d *Database) SaveRefreshToken(
	ctx context.Context,
	userID string,
	token string,
	expiresAt time.Time,
) error {
	return d.db.WithContext(ctx).Create(&RefreshToken{
		UserID:    userID,
		TokenHash: HashToken(token),
		ExpiresAt: expiresAt,
	}).Error
}

// FindRefreshToken looks a refresh session up by the raw token. Expired
// sessions are not returned.
func (d *Database) FindRefreshToken(
	ctx context.Context,
	token string,
) (*RefreshToken, error) {
	var refreshToken RefreshToken
	err := d.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", HashToken(token), time.Now()).
		First(&refreshToken).Error
	if err != nil {
		return nil, notFound(err)
	}

	return &refreshToken, nil
}

// DeleteRefreshToken removes one refresh session of the user.
func (d *Database) DeleteRefreshToken(
	ctx context.Context,
	userID string,
	token string,
) error {
	return d.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", userID, HashToken(token)).
		Delete(&RefreshToken{}).Error
}

// DeleteRefreshTokensForUser removes all the user's refresh sessions,
// used when an account is banned.
func (d *Database) DeleteRefreshTokensForUser(
	ctx context.Context,
	userID string,
) error {
	return d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&RefreshToken{}).Error
}

// PurgeExpiredRefreshTokens removes expired sessions and reports how
// many were removed.
func (d *Database) PurgeExpiredRefreshTokens(
	ctx context.Context,
) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&RefreshToken{})

	return result.RowsAffected, result.Error
}

// RecordDanglingImage marks an object key orphaned so the maintenance
// sweep removes the object. Recording the same key twice is a no-op.
func (d *Database) RecordDanglingImage(
	ctx context.Context,
	key string,
) error {
	var dangling DanglingImage
	return d.db.WithContext(ctx).
		Where(DanglingImage{Key: key}).
		FirstOrCreate(&dangling).Error
}

// ListDanglingImages returns all recorded orphan keys.
func (d *Database) ListDanglingImages(
	ctx context.Context,
) ([]DanglingImage, error) {
	var images []DanglingImage
	err := d.db.WithContext(ctx).Find(&images).Error
	if err != nil {
		return nil, err
	}

	return images, nil
}

// DeleteDanglingImage clears an orphan record once its object is gone.
func (d *Database) DeleteDanglingImage(
	ctx context.Context,
	key string,
) error {
	return d.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&DanglingImage{}).Error
}
