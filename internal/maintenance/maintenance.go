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

// Package maintenance runs the scheduled background jobs: purging
// expired refresh sessions and sweeping orphaned image objects.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/telusuri/telusuri/internal/config"
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
)

// Default schedules used when the configuration leaves them empty.
const (
	defaultTokenPurgeSchedule = "@hourly"
	defaultImageSweepSchedule = "@daily"
)

// ImageDeleter removes an image object, satisfied by imagestore.Store.
type ImageDeleter interface {
	Delete(ctx context.Context, key string) error
}

var _ ImageDeleter = (*imagestore.Store)(nil)

// Runner schedules and executes the maintenance jobs.
type Runner struct {
	cron   *cron.Cron
	db     *store.Database
	images ImageDeleter
	config config.Maintenance
	logger *slog.Logger
}

// New factory to create a new Runner instance.
func New(
	maintenanceConfig config.Maintenance,
	db *store.Database,
	images ImageDeleter,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		cron:   cron.New(),
		db:     db,
		images: images,
		config: maintenanceConfig,
		logger: logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (r *Runner) Start() error {
	tokenSchedule := r.config.TokenPurgeSchedule
	if tokenSchedule == "" {
		tokenSchedule = defaultTokenPurgeSchedule
	}
	imageSchedule := r.config.ImageSweepSchedule
	if imageSchedule == "" {
		imageSchedule = defaultImageSweepSchedule
	}

	_, err := r.cron.AddFunc(tokenSchedule, func() {
		r.RunTokenPurge(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling token purge: %w", err)
	}

	_, err = r.cron.AddFunc(imageSchedule, func() {
		r.RunImageSweep(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling image sweep: %w", err)
	}

	r.cron.Start()
	r.logger.Info(
		"maintenance scheduler started",
		slog.String("token_purge", tokenSchedule),
		slog.String("image_sweep", imageSchedule),
	)

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (r *Runner) Stop(
	ctx context.Context,
) error {
	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunTokenPurge removes expired refresh sessions.
func (r *Runner) RunTokenPurge(
	ctx context.Context,
) {
	purged, err := r.db.PurgeExpiredRefreshTokens(ctx)
	if err != nil {
		r.logger.Error(
			"token purge failed",
			slog.String("error", err.Error()),
		)
		return
	}

	if purged > 0 {
		r.logger.Info(
			"purged expired refresh tokens",
			slog.Int64("count", purged),
		)
	}
}

// RunImageSweep deletes orphaned image objects and clears their records.
// A failed object delete keeps the record so the next sweep retries it.
func (r *Runner) RunImageSweep(
	ctx context.Context,
) {
	images, err := r.db.ListDanglingImages(ctx)
	if err != nil {
		r.logger.Error(
			"image sweep failed",
			slog.String("error", err.Error()),
		)
		return
	}

	for _, image := range images {
		if err := r.images.Delete(ctx, image.Key); err != nil {
			r.logger.Error(
				"deleting dangling image failed",
				slog.String("key", image.Key),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := r.db.DeleteDanglingImage(ctx, image.Key); err != nil {
			r.logger.Error(
				"clearing dangling image record failed",
				slog.String("key", image.Key),
				slog.String("error", err.Error()),
			)
		}
	}
}
