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

	"github.com/spf13/cobra"

	"github.com/telusuri/telusuri/internal/authz"
)

// policyCheckCmd represents the policyCheck command.
var policyCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate one authorization query",
	Long: `Evaluate whether a subject may perform an action on an object,
using the same evaluator the API uses.

Subjects are written as "user::<id>" or "role::<name>", objects as
"resource:<type>::<id>" or "*".
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		rawSubject, _ := cmd.Flags().GetString("subject")
		rawObject, _ := cmd.Flags().GetString("object")
		action, _ := cmd.Flags().GetString("action")

		subject, err := authz.ParseSubject(rawSubject)
		if err != nil {
			logFatal("invalid subject", err)
		}
		object, err := authz.ParseObject(rawObject)
		if err != nil {
			logFatal("invalid object", err)
		}

		gormDB, _ := openDatabase()

		engine, err := authz.New(ctx, gormDB, logger)
		if err != nil {
			logFatal("failed to load policy engine", err)
		}

		verdict := "deny"
		if engine.Enforcer.Enforce(subject, object, action) {
			verdict = "allow"
		}

		fmt.Println()
		printKV("Subject", subject.Encode(), "Object", object.Encode())
		printKV("Action", action, "Verdict", verdict)
	},
}

func init() {
	policyCmd.AddCommand(policyCheckCmd)

	policyCheckCmd.PersistentFlags().
		StringP("subject", "s", "", `Subject token (e.g. "user::<id>")`)
	policyCheckCmd.PersistentFlags().
		StringP("object", "o", "*", `Object token (e.g. "resource:destination::<id>")`)
	policyCheckCmd.PersistentFlags().
		StringP("action", "a", "", "Action to evaluate (admin, create, edit, delete)")

	_ = policyCheckCmd.MarkPersistentFlagRequired("subject")
	_ = policyCheckCmd.MarkPersistentFlagRequired("action")
}
