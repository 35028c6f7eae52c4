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
	"fmt"
	"time"
)

// ResourceCounts is the platform overview for the admin dashboard.
type ResourceCounts struct {
	UserCount        int64
	DestinationCount int64
	UserYears        []int
	DestinationYears []int
}

// MonthCount is the number of records created in one month of a year.
type MonthCount struct {
	Month int
	Count int64
}

// GetResourceCounts aggregates user and destination totals plus the
// years each has activity in.
func (d *Database) GetResourceCounts(
	ctx context.Context,
) (*ResourceCounts, error) {
	counts := &ResourceCounts{}

	db := d.db.WithContext(ctx)
	if err := db.Model(&User{}).Count(&counts.UserCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Destination{}).Count(&counts.DestinationCount).Error; err != nil {
		return nil, err
	}

	userYears, err := d.activeYears(ctx, &User{})
	if err != nil {
		return nil, err
	}
	counts.UserYears = userYears

	destinationYears, err := d.activeYears(ctx, &Destination{})
	if err != nil {
		return nil, err
	}
	counts.DestinationYears = destinationYears

	return counts, nil
}

// GetUserMonthlyCounts returns per-month registration counts for a year.
func (d *Database) GetUserMonthlyCounts(
	ctx context.Context,
	year int,
) ([]MonthCount, error) {
	return d.monthlyCounts(ctx, &User{}, year)
}

// GetDestinationMonthlyCounts returns per-month post counts for a year.
func (d *Database) GetDestinationMonthlyCounts(
	ctx context.Context,
	year int,
) ([]MonthCount, error) {
	return d.monthlyCounts(ctx, &Destination{}, year)
}

// monthExpr returns the SQL extracting the month of created_at for the
// connected dialect.
func (d *Database) monthExpr() string {
	if d.db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%m', created_at) AS INTEGER)"
	}

	return "CAST(EXTRACT(MONTH FROM created_at) AS INTEGER)"
}

// yearExpr returns the SQL extracting the year of created_at for the
// connected dialect.
func (d *Database) yearExpr() string {
	if d.db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%Y', created_at) AS INTEGER)"
	}

	return "CAST(EXTRACT(YEAR FROM created_at) AS INTEGER)"
}

func (d *Database) activeYears(
	ctx context.Context,
	model any,
) ([]int, error) {
	expr := d.yearExpr()

	var years []int
	err := d.db.WithContext(ctx).
		Model(model).
		Distinct().
		Order("year ASC").
		Pluck(fmt.Sprintf("%s AS year", expr), &years).Error
	if err != nil {
		return nil, err
	}

	return years, nil
}

func (d *Database) monthlyCounts(
	ctx context.Context,
	model any,
	year int,
) ([]MonthCount, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	expr := d.monthExpr()

	query := d.db.WithContext(ctx).
		Model(model).
		Select(fmt.Sprintf("%s AS month, COUNT(id) AS count", expr)).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("month").
		Order("month ASC")

	// Soft-deleted posts still count toward activity.
	if _, ok := model.(*Destination); ok {
		query = query.Unscoped()
	}

	var counts []MonthCount
	if err := query.Scan(&counts).Error; err != nil {
		return nil, err
	}

	return counts, nil
}
