package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/parser"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <skill-name-or-path>",
	Short: "Validate a skill bundle",
	Long: `Validate a skill's manifest and structure.

The argument is either the name of a discoverable skill or a path to a
bundle directory (or its SKILL.md). Passing a path lets you check bundles
that are too broken to be discovered by name.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]

		valid, problems, err := validateTarget(cmd.Context(), target)
		if err != nil {
			presenter.Error(err, "Failed to validate skill")
			os.Exit(1)
		}

		if valid {
			presenter.Success(fmt.Sprintf("Skill '%s' is valid", target))
			return
		}

		fmt.Fprintf(os.Stderr, "✗ Skill '%s' has errors:\n", target)
		for _, problem := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", problem)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateTarget validates an on-disk bundle path directly, falling back
// to resolving the argument as a skill name.
func validateTarget(ctx context.Context, target string) (bool, []string, error) {
	if _, err := os.Stat(target); err == nil {
		valid, problems := parser.New().Validate(target)
		return valid, problems, nil
	}

	c, err := client.NewFromViper(ctx)
	if err != nil {
		return false, nil, errors.Wrap(err, "failed to initialize skill client")
	}
	return c.ValidateSkill(ctx, target)
}
