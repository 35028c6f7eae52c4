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

// Package user provides the profile and notification API handlers.
package user

import (
	"log/slog"

	"github.com/samber/lo"

	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
)

// birthDateLayout is the wire format of birth dates.
const birthDateLayout = "2006-01-02"

// User serves the profile endpoints.
type User struct {
	db     *store.Database
	images *imagestore.Store
	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	db *store.Database,
	images *imagestore.Store,
	logger *slog.Logger,
) *User {
	return &User{
		db:     db,
		images: images,
		logger: logger,
	}
}

// imageURL resolves an object key, empty keys stay empty.
func (u *User) imageURL(
	key string,
) string {
	if key == "" {
		return ""
	}

	return u.images.PublicURL(key)
}

// profileView is the authenticated user's own profile.
type profileView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	ProfileImage string   `json:"profileImage"`
	Gender       string   `json:"gender"`
	BirthDate    string   `json:"birthDate"`
	Interests    []string `json:"interests"`
}

func (u *User) profileView(
	usr *store.User,
) profileView {
	view := profileView{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     usr.Username,
		Email:        usr.Email,
		ProfileImage: u.imageURL(usr.ProfileImage),
		Interests: lo.Map(usr.Interests, func(i store.Interest, _ int) string {
			return i.Interest
		}),
	}
	if usr.PersonalData != nil {
		view.Gender = usr.PersonalData.Gender
		if usr.PersonalData.BirthDate != nil {
			view.BirthDate = usr.PersonalData.BirthDate.Format(birthDateLayout)
		}
	}

	return view
}
