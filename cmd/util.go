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

package cmd

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/telusuri/telusuri/internal/cli"
	"github.com/telusuri/telusuri/internal/database"
	"github.com/telusuri/telusuri/internal/store"
)

// logFatal logs a fatal error with the package logger and exits.
func logFatal(
	message string,
	err error,
	kvPairs ...any,
) {
	cli.LogFatal(logger, message, err, kvPairs...)
}

// printKV prints labeled key-value pairs on a single indented line.
func printKV(
	pairs ...string,
) {
	cli.PrintKV(pairs...)
}

// runServer blocks until ctx is cancelled, then shuts the server down.
func runServer(
	ctx context.Context,
	server cli.Lifecycle,
	cleanupFns ...func(),
) {
	cli.RunServer(ctx, server, cleanupFns...)
}

// openDatabase opens the configured database and wraps it in the store.
func openDatabase() (*gorm.DB, *store.Database) {
	db, err := database.Open(appConfig.Database, logger)
	if err != nil {
		logFatal("failed to open database", err, slog.String("driver", appConfig.Database.Driver))
	}

	return db, store.New(db, logger)
}
