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

	"github.com/spf13/cobra"

	"github.com/telusuri/telusuri/internal/api"
	"github.com/telusuri/telusuri/internal/authtoken"
	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/maintenance"
)

// serverStartCmd represents the serverStart command.
var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Long: `Start the API server and the maintenance scheduler.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		gormDB, db := openDatabase()

		engine, err := authz.New(ctx, gormDB, logger.With("component", "authz"))
		if err != nil {
			logFatal("failed to load policy engine", err)
		}

		images, err := imagestore.New(
			appConfig.Storage,
			logger.With("component", "imagestore"),
		)
		if err != nil {
			logFatal("failed to create image store", err)
		}

		token := authtoken.New(logger)

		sm := api.New(
			appConfig,
			logger.With("component", "api"),
			api.WithDatabase(gormDB, db),
			api.WithEngine(engine),
			api.WithToken(token),
			api.WithImageStore(images),
		)
		sm.RegisterRoutes()

		runner := maintenance.New(
			appConfig.Maintenance,
			db,
			images,
			logger.With("component", "maintenance"),
		)
		if err := runner.Start(); err != nil {
			logFatal("failed to start maintenance scheduler", err)
		}

		sm.Start()
		runServer(ctx, sm, func() {
			_ = runner.Stop(context.Background())
		})
	},
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
}
