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
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/store"
)

// dbSeedCmd represents the dbSeed command.
var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the baseline policy rules and bootstrap administrator",
	Long: `Apply migrations, install the baseline role policy rules, and create
the bootstrap administrator account configured under seed. The admin
password may be supplied in the config file or through --admin-password-file.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		gormDB, db := openDatabase()

		if err := db.Migrate(); err != nil {
			logFatal("failed to migrate business schema", err)
		}

		policyStore := authz.NewStore(gormDB, logger)
		if err := policyStore.Migrate(); err != nil {
			logFatal("failed to migrate policy schema", err)
		}
		if err := policyStore.Load(ctx); err != nil {
			logFatal("failed to load policy rules", err)
		}

		var adminUserIDs []string
		if appConfig.Seed.AdminEmail != "" {
			passwordFile, _ := cmd.Flags().GetString("admin-password-file")
			admin := bootstrapAdmin(ctx, db, passwordFile)
			adminUserIDs = append(adminUserIDs, admin.ID)
		}

		if err := authz.Seed(ctx, policyStore, adminUserIDs, logger); err != nil {
			logFatal("failed to seed policy rules", err)
		}

		logger.Info("seed complete")
	},
}

// bootstrapAdmin creates the configured administrator account, or returns
// the existing one when the email is already registered.
func bootstrapAdmin(
	ctx context.Context,
	db *store.Database,
	passwordFile string,
) *store.User {
	existing, err := db.GetUserByEmail(ctx, appConfig.Seed.AdminEmail)
	if err == nil {
		logger.Info(
			"bootstrap admin already exists",
			slog.String("email", existing.Email),
		)
		return existing
	}
	if !errors.Is(err, store.ErrNotFound) {
		logFatal("failed to look up bootstrap admin", err)
	}

	password := appConfig.Seed.AdminPassword
	if passwordFile != "" {
		raw, err := afero.ReadFile(appFs, passwordFile)
		if err != nil {
			logFatal("failed to read admin password file", err,
				slog.String("file", passwordFile))
		}
		password = strings.TrimSpace(string(raw))
	}
	if password == "" {
		logFatal("bootstrap admin password is not configured", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logFatal("failed to hash admin password", err)
	}

	admin := store.User{
		Name:         appConfig.Seed.AdminName,
		Username:     appConfig.Seed.AdminUsername,
		Email:        appConfig.Seed.AdminEmail,
		PasswordHash: string(hash),
		Verified:     true,
	}
	if err := db.CreateUser(ctx, &admin); err != nil {
		logFatal("failed to create bootstrap admin", err)
	}

	logger.Info("bootstrap admin created", slog.String("email", admin.Email))

	return &admin
}

func init() {
	dbCmd.AddCommand(dbSeedCmd)

	dbSeedCmd.PersistentFlags().
		String("admin-password-file", "", "Read the bootstrap admin password from a file")
}
