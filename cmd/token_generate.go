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
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/telusuri/telusuri/internal/authtoken"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		userID string,
		kind string,
		ttl time.Duration,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a signed access or refresh token for a user. Useful for
smoke-testing a deployment without going through the login flow.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Security.SigningKey
		userID, _ := cmd.Flags().GetString("user-id")
		kind, _ := cmd.Flags().GetString("kind")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		if ttl == 0 {
			ttl = appConfig.AccessTokenTTL()
			if kind == authtoken.KindRefresh {
				ttl = appConfig.RefreshTokenTTL()
			}
		}

		var tm TokenGenerator = authtoken.New(logger)
		token, err := tm.Generate(signingKey, userID, kind, ttl)
		if err != nil {
			logFatal("failed to generate token", err)
		}

		logger.Info(
			"generated token",
			slog.String("token", token),
			slog.String("kind", kind),
			slog.String("user_id", userID),
			slog.Duration("ttl", ttl),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.PersistentFlags().
		StringP("user-id", "u", "", "User ID the token authenticates")
	tokenGenerateCmd.PersistentFlags().
		StringP("kind", "k", authtoken.KindAccess, "Token kind (access or refresh)")
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", 0, "Token lifetime (defaults to the configured TTL for the kind)")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("user-id")

	tokenGenerateCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		kind, _ := cmd.Flags().GetString("kind")

		if kind != authtoken.KindAccess && kind != authtoken.KindRefresh {
			logFatal("invalid token kind", fmt.Errorf("unsupported kind: %s", kind),
				"allowed", []string{authtoken.KindAccess, authtoken.KindRefresh})
		}
	}
}
