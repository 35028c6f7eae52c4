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
	"time"

	"gorm.io/gorm"
)

// User is a registered account.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Name         string `gorm:"size:50"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Username     string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:60"`
	Verified     bool
	ProfileImage string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	PersonalData *PersonalData `gorm:"foreignKey:UserID"`
	Interests    []Interest    `gorm:"foreignKey:UserID"`
}

// PersonalData holds the optional profile details of a user.
type PersonalData struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;uniqueIndex;not null"`
	Gender    string `gorm:"size:10"`
	BirthDate *time.Time
}

// Interest is one of a user's declared travel interests.
type Interest struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   string `gorm:"type:uuid;uniqueIndex:idx_user_interest;not null"`
	Interest string `gorm:"size:50;uniqueIndex:idx_user_interest;not null"`
}

// Destination is a travel destination post. Deletion is a soft delete so
// admins can restore posts.
type Destination struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"size:50;not null"`
	Detail    string `gorm:"type:text;not null"`
	Location  string `gorm:"size:100;not null"`
	Province  string `gorm:"size:50;index"`
	Category  string `gorm:"size:50;index"`
	ImageKey  string `gorm:"size:255;not null"`
	UserID    string `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Author *User `gorm:"foreignKey:UserID"`
}

// Rating is a user's score for a destination, one per user per post.
type Rating struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        string  `gorm:"type:uuid;uniqueIndex:idx_rating_user_post;not null"`
	DestinationID string  `gorm:"type:uuid;uniqueIndex:idx_rating_user_post;not null"`
	Score         float64 `gorm:"not null"`
}

// Wishlist marks a destination a user wants to visit.
type Wishlist struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_post;not null"`
	DestinationID string `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_post;not null"`
	CreatedAt     time.Time

	Destination *Destination `gorm:"foreignKey:DestinationID"`
}

// Contact is a message sent through the contact form. UserID is nil when
// the sender was not signed in.
type Contact struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null"`
	Email     string `gorm:"size:255;not null"`
	Reason    string `gorm:"size:100;not null"`
	Message   string `gorm:"size:1000;not null"`
	UserID    *string `gorm:"type:uuid"`
	CreatedAt time.Time
}

// Notification is an in-app message delivered to a user.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;index;not null"`
	From      string `gorm:"size:50;not null"`
	Detail    string `gorm:"type:text;not null"`
	Read      bool
	CreatedAt time.Time
}

// RefreshToken is a persisted refresh session. Only the SHA-256 of the
// token is stored.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;index;not null"`
	TokenHash string `gorm:"size:64;index;not null"`
	ExpiresAt time.Time
}

// DanglingImage records an object key whose row no longer references it.
// The maintenance sweep deletes the object and the record.
type DanglingImage struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
}
