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

package store_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/telusuri/telusuri/internal/store"
)

type StorePublicTestSuite struct {
	suite.Suite

	ctx context.Context
	db  *store.Database
}

func (s *StorePublicTestSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	// A single connection keeps the in-memory database alive and serializes
	// concurrent writers.
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.db = store.New(db, logger)
	s.Require().NoError(s.db.Migrate())
}

func (s *StorePublicTestSuite) createUser(
	username string,
) *store.User {
	user := &store.User{
		Name:         "Test " + username,
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
	}
	s.Require().NoError(s.db.CreateUser(s.ctx, user))

	return user
}

func (s *StorePublicTestSuite) createDestination(
	userID string,
	name string,
) *store.Destination {
	destination := &store.Destination{
		Name:     name,
		Detail:   "detail",
		Location: "somewhere",
		Province: "Jawa Timur",
		Category: "Cagar Alam",
		ImageKey: "images/" + name + ".jpg",
		UserID:   userID,
	}
	s.Require().NoError(s.db.CreateDestination(s.ctx, destination))

	return destination
}

func (s *StorePublicTestSuite) TestCreateUser() {
	user := s.createUser("alice")

	s.NotEmpty(user.ID)

	got, err := s.db.GetUserByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("alice", got.Username)

	got, err = s.db.GetUserByEmail(s.ctx, "alice@example.com")
	s.NoError(err)
	s.Equal(user.ID, got.ID)

	got, err = s.db.GetUserByUsername(s.ctx, "alice")
	s.NoError(err)
	s.Equal(user.ID, got.ID)
}

func (s *StorePublicTestSuite) TestCreateUserDuplicateEmail() {
	s.createUser("alice")

	err := s.db.CreateUser(s.ctx, &store.User{
		Email:    "alice@example.com",
		Username: "alice2",
	})
	s.Error(err)
}

func (s *StorePublicTestSuite) TestGetUserByIDNotFound() {
	_, err := s.db.GetUserByID(s.ctx, "00000000-0000-0000-0000-000000000000")

	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StorePublicTestSuite) TestUpdateProfile() {
	user := s.createUser("alice")

	name := "Alice Renamed"
	gender := "female"
	birthDate := time.Date(1998, time.May, 4, 0, 0, 0, 0, time.UTC)
	err := s.db.UpdateProfile(s.ctx, user.ID, store.ProfileUpdate{
		Name:      &name,
		Gender:    &gender,
		BirthDate: &birthDate,
		Interests: []string{"Bahari", "Budaya", "Bahari"},
	})
	s.NoError(err)

	got, err := s.db.GetUserByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal("Alice Renamed", got.Name)
	s.Require().NotNil(got.PersonalData)
	s.Equal("female", got.PersonalData.Gender)
	s.Len(got.Interests, 2)

	// A later update with a new interest set replaces the old one.
	err = s.db.UpdateProfile(s.ctx, user.ID, store.ProfileUpdate{
		Interests: []string{"Tempat Ibadah"},
	})
	s.NoError(err)

	got, err = s.db.GetUserByID(s.ctx, user.ID)
	s.NoError(err)
	s.Len(got.Interests, 1)
	s.Equal("Tempat Ibadah", got.Interests[0].Interest)
}

func (s *StorePublicTestSuite) TestSetProfileImage() {
	user := s.createUser("alice")

	previous, err := s.db.SetProfileImage(s.ctx, user.ID, "profiles/a.jpg")
	s.NoError(err)
	s.Empty(previous)

	previous, err = s.db.SetProfileImage(s.ctx, user.ID, "profiles/b.jpg")
	s.NoError(err)
	s.Equal("profiles/a.jpg", previous)
}

func (s *StorePublicTestSuite) TestDestinationLifecycle() {
	user := s.createUser("writer")
	destination := s.createDestination(user.ID, "Bromo Mountain")

	got, err := s.db.GetDestination(s.ctx, destination.ID)
	s.NoError(err)
	s.Equal("Bromo Mountain", got.Name)
	s.Require().NotNil(got.Author)
	s.Equal("writer", got.Author.Username)

	s.NoError(s.db.SoftDeleteDestination(s.ctx, destination.ID))

	_, err = s.db.GetDestination(s.ctx, destination.ID)
	s.ErrorIs(err, store.ErrNotFound)

	// Still reachable for admins.
	any, err := s.db.GetDestinationAny(s.ctx, destination.ID)
	s.NoError(err)
	s.True(any.DeletedAt.Valid)

	restored, err := s.db.RestoreDestination(s.ctx, destination.ID)
	s.NoError(err)
	s.Equal(destination.ID, restored.ID)

	_, err = s.db.GetDestination(s.ctx, destination.ID)
	s.NoError(err)
}

func (s *StorePublicTestSuite) TestSoftDeleteDestinationNotFound() {
	err := s.db.SoftDeleteDestination(s.ctx, "missing")

	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StorePublicTestSuite) TestUpdateDestinationRecordsDanglingImage() {
	user := s.createUser("writer")
	destination := s.createDestination(user.ID, "Bromo Mountain")

	name := "Bromo"
	imageKey := "images/new.jpg"
	err := s.db.UpdateDestination(s.ctx, destination.ID, store.DestinationUpdate{
		Name:     &name,
		ImageKey: &imageKey,
	})
	s.NoError(err)

	got, err := s.db.GetDestination(s.ctx, destination.ID)
	s.NoError(err)
	s.Equal("Bromo", got.Name)
	s.Equal("images/new.jpg", got.ImageKey)

	images, err := s.db.ListDanglingImages(s.ctx)
	s.NoError(err)
	s.Require().Len(images, 1)
	s.Equal(destination.ImageKey, images[0].Key)
}

func (s *StorePublicTestSuite) TestListDestinations() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	bromo := s.createDestination(alice.ID, "Bromo Mountain")
	raja := s.createDestination(bob.ID, "Raja Ampat")
	s.Require().NoError(
		s.db.UpsertRating(s.ctx, alice.ID, raja.ID, 5),
	)
	s.Require().NoError(
		s.db.UpsertRating(s.ctx, alice.ID, bromo.ID, 3),
	)

	tests := []struct {
		name      string
		filter    store.DestinationFilter
		wantNames []string
	}{
		{
			name:      "when filtering by name prefix",
			filter:    store.DestinationFilter{NamePrefix: "Bromo"},
			wantNames: []string{"Bromo Mountain"},
		},
		{
			name:      "when filtering by province",
			filter:    store.DestinationFilter{Province: "Jawa Timur"},
			wantNames: []string{"Raja Ampat", "Bromo Mountain"},
		},
		{
			name:      "when sorting by rating",
			filter:    store.DestinationFilter{Sort: store.SortHighestRating},
			wantNames: []string{"Raja Ampat", "Bromo Mountain"},
		},
		{
			name: "when scoped to the author",
			filter: store.DestinationFilter{
				Sort:   store.SortWrittenByYou,
				UserID: alice.ID,
			},
			wantNames: []string{"Bromo Mountain"},
		},
		{
			name:      "when nothing matches",
			filter:    store.DestinationFilter{Province: "Bali"},
			wantNames: []string{},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			destinations, err := s.db.ListDestinations(s.ctx, tc.filter)
			s.NoError(err)

			names := make([]string, 0, len(destinations))
			for _, destination := range destinations {
				names = append(names, destination.Name)
			}
			s.Equal(tc.wantNames, names)
		})
	}
}

func (s *StorePublicTestSuite) TestUpsertRating() {
	user := s.createUser("alice")
	destination := s.createDestination(user.ID, "Bromo Mountain")

	s.NoError(s.db.UpsertRating(s.ctx, user.ID, destination.ID, 4))
	s.NoError(s.db.UpsertRating(s.ctx, user.ID, destination.ID, 2))

	summary, err := s.db.GetRatingSummary(s.ctx, destination.ID)
	s.NoError(err)
	s.Equal(int64(1), summary.Count)
	s.InDelta(2.0, summary.Average, 0.001)
}

func (s *StorePublicTestSuite) TestWishlists() {
	user := s.createUser("alice")
	destination := s.createDestination(user.ID, "Bromo Mountain")

	s.NoError(s.db.AddWishlist(s.ctx, user.ID, destination.ID))
	// Idempotent.
	s.NoError(s.db.AddWishlist(s.ctx, user.ID, destination.ID))

	wishlists, err := s.db.ListWishlists(s.ctx, user.ID)
	s.NoError(err)
	s.Require().Len(wishlists, 1)
	s.Require().NotNil(wishlists[0].Destination)
	s.Equal("Bromo Mountain", wishlists[0].Destination.Name)

	s.NoError(s.db.RemoveWishlist(s.ctx, user.ID, destination.ID))
	s.ErrorIs(
		s.db.RemoveWishlist(s.ctx, user.ID, destination.ID),
		store.ErrNotFound,
	)
}

func (s *StorePublicTestSuite) TestContacts() {
	user := s.createUser("alice")

	s.NoError(s.db.CreateContact(s.ctx, &store.Contact{
		Name:    "Alice",
		Email:   "alice@example.com",
		Reason:  "feedback",
		Message: "hello",
		UserID:  &user.ID,
	}))
	s.NoError(s.db.CreateContact(s.ctx, &store.Contact{
		Name:    "Anon",
		Email:   "anon@example.com",
		Reason:  "question",
		Message: "hi",
	}))

	contacts, err := s.db.ListContacts(s.ctx, 0, 30)
	s.NoError(err)
	s.Len(contacts, 2)
}

func (s *StorePublicTestSuite) TestNotifications() {
	user := s.createUser("alice")

	s.NoError(s.db.CreateNotification(s.ctx, &store.Notification{
		UserID: user.ID,
		From:   "admin",
		Detail: "your post was restored",
	}))

	notifications, err := s.db.ListNotifications(s.ctx, user.ID)
	s.NoError(err)
	s.Require().Len(notifications, 1)
	s.False(notifications[0].Read)

	s.NoError(s.db.MarkNotificationsRead(s.ctx, user.ID))

	notifications, err = s.db.ListNotifications(s.ctx, user.ID)
	s.NoError(err)
	s.True(notifications[0].Read)
}

func (s *StorePublicTestSuite) TestRefreshTokens() {
	user := s.createUser("alice")

	s.NoError(s.db.SaveRefreshToken(
		s.ctx, user.ID, "tok-live", time.Now().Add(time.Hour),
	))
	s.NoError(s.db.SaveRefreshToken(
		s.ctx, user.ID, "tok-expired", time.Now().Add(-time.Hour),
	))

	found, err := s.db.FindRefreshToken(s.ctx, "tok-live")
	s.NoError(err)
	s.Equal(user.ID, found.UserID)

	_, err = s.db.FindRefreshToken(s.ctx, "tok-expired")
	s.ErrorIs(err, store.ErrNotFound)

	purged, err := s.db.PurgeExpiredRefreshTokens(s.ctx)
	s.NoError(err)
	s.Equal(int64(1), purged)

	s.NoError(s.db.DeleteRefreshToken(s.ctx, user.ID, "tok-live"))
	_, err = s.db.FindRefreshToken(s.ctx, "tok-live")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StorePublicTestSuite) TestDeleteRefreshTokensForUser() {
	user := s.createUser("alice")

	s.NoError(s.db.SaveRefreshToken(
		s.ctx, user.ID, "tok-1", time.Now().Add(time.Hour),
	))
	s.NoError(s.db.SaveRefreshToken(
		s.ctx, user.ID, "tok-2", time.Now().Add(time.Hour),
	))

	s.NoError(s.db.DeleteRefreshTokensForUser(s.ctx, user.ID))

	_, err := s.db.FindRefreshToken(s.ctx, "tok-1")
	s.ErrorIs(err, store.ErrNotFound)
	_, err = s.db.FindRefreshToken(s.ctx, "tok-2")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StorePublicTestSuite) TestDanglingImages() {
	s.NoError(s.db.RecordDanglingImage(s.ctx, "images/a.jpg"))
	// Idempotent.
	s.NoError(s.db.RecordDanglingImage(s.ctx, "images/a.jpg"))

	images, err := s.db.ListDanglingImages(s.ctx)
	s.NoError(err)
	s.Len(images, 1)

	s.NoError(s.db.DeleteDanglingImage(s.ctx, "images/a.jpg"))

	images, err = s.db.ListDanglingImages(s.ctx)
	s.NoError(err)
	s.Empty(images)
}

func (s *StorePublicTestSuite) TestListUsers() {
	for i := 0; i < 3; i++ {
		s.createUser(fmt.Sprintf("user%d", i))
	}

	users, total, err := s.db.ListUsers(s.ctx, 0, 2)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 2)

	users, _, err = s.db.ListUsers(s.ctx, 1, 2)
	s.NoError(err)
	s.Len(users, 1)
}

func (s *StorePublicTestSuite) TestAnalytics() {
	alice := s.createUser("alice")
	s.createUser("bob")
	s.createDestination(alice.ID, "Bromo Mountain")

	counts, err := s.db.GetResourceCounts(s.ctx)
	s.NoError(err)
	s.Equal(int64(2), counts.UserCount)
	s.Equal(int64(1), counts.DestinationCount)
	s.Len(counts.UserYears, 1)
	s.Len(counts.DestinationYears, 1)

	year := time.Now().UTC().Year()
	months, err := s.db.GetUserMonthlyCounts(s.ctx, year)
	s.NoError(err)
	s.Require().Len(months, 1)
	s.Equal(int64(2), months[0].Count)

	months, err = s.db.GetDestinationMonthlyCounts(s.ctx, year)
	s.NoError(err)
	s.Require().Len(months, 1)
	s.Equal(int64(1), months[0].Count)
}

func TestStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(StorePublicTestSuite))
}
