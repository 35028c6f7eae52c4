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
	"github.com/spf13/cobra"

	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/cli"
)

// policyListCmd represents the policyList command.
var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the persisted policy rules",
	Long: `List every persisted policy rule: permission tuples and role
inheritance, as the evaluator sees them.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		gormDB, _ := openDatabase()

		policyStore := authz.NewStore(gormDB, logger)
		rules, err := policyStore.AllRules(ctx)
		if err != nil {
			logFatal("failed to list policy rules", err)
		}

		var permissionRows [][]string
		var groupingRows [][]string
		for _, rule := range rules {
			if rule.PType == "p" {
				permissionRows = append(permissionRows, []string{
					rule.Effect,
					rule.Subject,
					rule.Object,
					rule.Action,
				})
				continue
			}
			groupingRows = append(groupingRows, []string{
				rule.Subject,
				rule.Object,
			})
		}

		cli.PrintCompactTable([]cli.Section{
			{
				Title:   "Permissions",
				Headers: []string{"EFFECT", "SUBJECT", "OBJECT", "ACTION"},
				Rows:    permissionRows,
			},
			{
				Title:   "Role Inheritance",
				Headers: []string{"SUBJECT", "INHERITS"},
				Rows:    groupingRows,
			},
		})
	},
}

func init() {
	policyCmd.AddCommand(policyListCmd)
}
