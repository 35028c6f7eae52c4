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
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// CreateUser inserts a new user, assigning an ID when empty.
func (d *Database) CreateUser(
	ctx context.Context,
	user *User,
) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	return d.db.WithContext(ctx).Create(user).Error
}

// GetUserByID fetches a user with profile details.
func (d *Database) GetUserByID(
	ctx context.Context,
	id string,
) (*User, error) {
	var user User
	err := d.db.WithContext(ctx).
		Preload("PersonalData").
		Preload("Interests").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}

	return &user, nil
}

// GetUserByEmail fetches a user by email.
func (d *Database) GetUserByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	var user User
	err := d.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, notFound(err)
	}

	return &user, nil
}

// GetUserByUsername fetches a user by username.
func (d *Database) GetUserByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	var user User
	err := d.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, notFound(err)
	}

	return &user, nil
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave
// the current value untouched.
type ProfileUpdate struct {
	Name      *string
	Gender    *string
	BirthDate *time.Time
	Interests []string
}

// UpdateProfile applies a profile update in one transaction. Interests,
// when present, replace the existing set.
func (d *Database) UpdateProfile(
	ctx context.Context,
	userID string,
	update ProfileUpdate,
) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if update.Name != nil {
			err := tx.Model(&User{}).
				Where("id = ?", userID).
				Update("name", *update.Name).Error
			if err != nil {
				return err
			}
		}

		if update.Gender != nil || update.BirthDate != nil {
			var pd PersonalData
			err := tx.Where(PersonalData{UserID: userID}).
				FirstOrCreate(&pd).Error
			if err != nil {
				return err
			}
			if update.Gender != nil {
				pd.Gender = *update.Gender
			}
			if update.BirthDate != nil {
				pd.BirthDate = update.BirthDate
			}
			if err := tx.Save(&pd).Error; err != nil {
				return err
			}
		}

		if update.Interests != nil {
			err := tx.Where("user_id = ?", userID).
				Delete(&Interest{}).Error
			if err != nil {
				return err
			}
			interests := lo.Map(
				lo.Uniq(update.Interests),
				func(name string, _ int) Interest {
					return Interest{UserID: userID, Interest: name}
				},
			)
			if len(interests) > 0 {
				if err := tx.Create(&interests).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// SetProfileImage stores the new image key and returns the replaced one,
// empty when the user had no image.
func (d *Database) SetProfileImage(
	ctx context.Context,
	userID string,
	key string,
) (string, error) {
	var previous string

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return notFound(err)
		}
		previous = user.ProfileImage

		return tx.Model(&user).Update("profile_image", key).Error
	})
	if err != nil {
		return "", err
	}

	return previous, nil
}

// ListUsers returns a page of users ordered by creation time.
func (d *Database) ListUsers(
	ctx context.Context,
	page int,
	pageSize int,
) ([]User, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := d.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(pageSize).
		Offset(page * pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
