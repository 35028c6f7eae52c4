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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sort orders accepted by ListDestinations.
const (
	SortNewest        = "NEWEST"
	SortOldest        = "OLDEST"
	SortHighestRating = "HIGHEST_RATING"
	SortWrittenByYou  = "WRITTEN_BY_YOU"
)

// DestinationFilter narrows and orders a destination listing.
type DestinationFilter struct {
	Province   string
	Category   string
	NamePrefix string
	// Sort is one of the Sort constants; empty means NEWEST.
	Sort string
	// UserID scopes the listing when Sort is WRITTEN_BY_YOU.
	UserID   string
	Page     int
	PageSize int
}

// RatingSummary is the aggregate rating of a destination.
type RatingSummary struct {
	Average float64
	Count   int64
}

// CreateDestination inserts a new post, assigning an ID when empty.
func (d *Database) CreateDestination(
	ctx context.Context,
	destination *Destination,
) error {
	if destination.ID == "" {
		destination.ID = uuid.NewString()
	}

	return d.db.WithContext(ctx).Create(destination).Error
}

// GetDestination fetches a live post with its author.
func (d *Database) GetDestination(
	ctx context.Context,
	id string,
) (*Destination, error) {
	var destination Destination
	err := d.db.WithContext(ctx).
		Preload("Author").
		First(&destination, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}

	return &destination, nil
}

// GetDestinationAny fetches a post including soft-deleted ones.
func (d *Database) GetDestinationAny(
	ctx context.Context,
	id string,
) (*Destination, error) {
	var destination Destination
	err := d.db.WithContext(ctx).
		Unscoped().
		Preload("Author").
		First(&destination, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}

	return &destination, nil
}

// DestinationUpdate carries the mutable post fields. Nil pointers leave
// the current value untouched.
type DestinationUpdate struct {
	Name     *string
	Detail   *string
	Location *string
	Province *string
	Category *string
	ImageKey *string
}

// UpdateDestination applies an update in one transaction. A replaced
// image key is recorded as dangling for the maintenance sweep.
func (d *Database) UpdateDestination(
	ctx context.Context,
	id string,
	update DestinationUpdate,
) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var destination Destination
		if err := tx.First(&destination, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		columns := map[string]any{}
		if update.Name != nil {
			columns["name"] = *update.Name
		}
		if update.Detail != nil {
			columns["detail"] = *update.Detail
		}
		if update.Location != nil {
			columns["location"] = *update.Location
		}
		if update.Province != nil {
			columns["province"] = *update.Province
		}
		if update.Category != nil {
			columns["category"] = *update.Category
		}
		if update.ImageKey != nil && *update.ImageKey != destination.ImageKey {
			columns["image_key"] = *update.ImageKey
			err := tx.Create(&DanglingImage{Key: destination.ImageKey}).Error
			if err != nil {
				return err
			}
		}
		if len(columns) == 0 {
			return nil
		}

		return tx.Model(&destination).Updates(columns).Error
	})
}

// SoftDeleteDestination marks a post deleted. The row and its image stay
// so an admin can restore it.
func (d *Database) SoftDeleteDestination(
	ctx context.Context,
	id string,
) error {
	result := d.db.WithContext(ctx).Delete(&Destination{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// RestoreDestination clears the soft delete and returns the post.
func (d *Database) RestoreDestination(
	ctx context.Context,
	id string,
) (*Destination, error) {
	err := d.db.WithContext(ctx).
		Unscoped().
		Model(&Destination{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
	if err != nil {
		return nil, err
	}

	return d.GetDestination(ctx, id)
}

// ListDestinations returns a page of live posts matching the filter.
func (d *Database) ListDestinations(
	ctx context.Context,
	filter DestinationFilter,
) ([]Destination, error) {
	query := d.db.WithContext(ctx).Model(&Destination{}).Preload("Author")

	if filter.Province != "" {
		query = query.Where("province = ?", filter.Province)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.NamePrefix != "" {
		query = query.Where("name LIKE ?", filter.NamePrefix+"%")
	}

	switch filter.Sort {
	case SortOldest:
		query = query.Order("created_at ASC")
	case SortHighestRating:
		query = query.Order(
			"(SELECT COALESCE(AVG(score), 0) FROM ratings" +
				" WHERE ratings.destination_id = destinations.id) DESC",
		)
	case SortWrittenByYou:
		query = query.Where("user_id = ?", filter.UserID).
			Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 30
	}

	var destinations []Destination
	err := query.
		Limit(pageSize).
		Offset(filter.Page * pageSize).
		Find(&destinations).Error
	if err != nil {
		return nil, err
	}

	return destinations, nil
}

// GetRatingSummary aggregates the ratings of a destination.
func (d *Database) GetRatingSummary(
	ctx context.Context,
	destinationID string,
) (RatingSummary, error) {
	var summary struct {
		Average float64
		Count   int64
	}
	err := d.db.WithContext(ctx).
		Model(&Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(id) AS count").
		Where("destination_id = ?", destinationID).
		Scan(&summary).Error
	if err != nil {
		return RatingSummary{}, err
	}

	return RatingSummary{Average: summary.Average, Count: summary.Count}, nil
}

// UpsertRating stores a user's score for a destination, replacing any
// previous score.
func (d *Database) UpsertRating(
	ctx context.Context,
	userID string,
	destinationID string,
	score float64,
) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rating Rating
		err := tx.Where(Rating{UserID: userID, DestinationID: destinationID}).
			FirstOrCreate(&rating).Error
		if err != nil {
			return err
		}

		return tx.Model(&rating).Update("score", score).Error
	})
}

// AdminDestinationRow is a destination joined with its author for the
// admin listing, soft-deleted posts included.
type AdminDestinationRow struct {
	ID       string
	Name     string
	ImageKey string
	Username string
	Email    string
	Status   string
}

// Post statuses reported by ListAllDestinations.
const (
	StatusPosted  = "posted"
	StatusDeleted = "deleted"
)

// ListAllDestinations returns a page of posts for the admin console.
// status narrows to posted or deleted posts; empty means both.
func (d *Database) ListAllDestinations(
	ctx context.Context,
	page int,
	pageSize int,
	namePrefix string,
	status string,
) ([]AdminDestinationRow, error) {
	if pageSize <= 0 {
		pageSize = 30
	}

	query := d.db.WithContext(ctx).
		Unscoped().
		Model(&Destination{}).
		Select(
			"destinations.id, destinations.name, destinations.image_key,"+
				" users.username, users.email,"+
				" CASE WHEN destinations.deleted_at IS NULL THEN ? ELSE ? END AS status",
			StatusPosted, StatusDeleted,
		).
		Joins("JOIN users ON users.id = destinations.user_id")

	switch status {
	case StatusPosted:
		query = query.Where("destinations.deleted_at IS NULL")
	case StatusDeleted:
		query = query.Where("destinations.deleted_at IS NOT NULL")
	}
	if namePrefix != "" {
		query = query.Where("destinations.name LIKE ?", namePrefix+"%")
	}

	var rows []AdminDestinationRow
	err := query.
		Order("destinations.created_at DESC").
		Limit(pageSize).
		Offset(page * pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
