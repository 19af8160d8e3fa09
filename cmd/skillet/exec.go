package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ExecConfig struct {
	Input   string
	Timeout int
}

func NewExecConfig() *ExecConfig {
	return &ExecConfig{
		Input:   "",
		Timeout: 0,
	}
}

var execCmd = &cobra.Command{
	Use:   "exec <skill-name> <tool-name>",
	Short: "Execute a skill tool",
	Long: `Execute one of a skill's tools and print its result.

Input is passed to the tool as a JSON object on stdin. On success the
tool's data payload is printed as JSON; on failure the error and any
stderr output are printed and the command exits non-zero.

Examples:
  skillet exec deploy-tools run-deploy --input '{"env": "staging"}'
  skillet exec deploy-tools run-deploy --input @input.json --timeout 60`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config := getExecConfigFromFlags(cmd)
		ctx := cmd.Context()

		input, err := parseExecInput(config.Input)
		if err != nil {
			presenter.Error(err, "Invalid tool input")
			os.Exit(1)
		}

		c, err := client.NewFromViper(ctx)
		if err != nil {
			presenter.Error(err, "Failed to initialize skill client")
			os.Exit(1)
		}

		result, err := c.ExecuteTool(ctx, args[0], args[1], input, time.Duration(config.Timeout)*time.Second)
		if err != nil {
			presenter.Error(err, "Failed to execute tool")
			os.Exit(1)
		}

		if result.Success {
			out, err := json.MarshalIndent(result.Data, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode tool output")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Fprintf(os.Stderr, "Error: %s\n", result.Error)
		if result.Stderr != "" {
			fmt.Fprintf(os.Stderr, "\nStderr:\n%s\n", result.Stderr)
		}
		os.Exit(1)
	},
}

func init() {
	defaults := NewExecConfig()
	execCmd.Flags().StringP("input", "i", defaults.Input, "Input data as a JSON string or @filename")
	execCmd.Flags().Int("timeout", defaults.Timeout, "Execution timeout in seconds (0 uses the configured default)")

	rootCmd.AddCommand(execCmd)
}

func getExecConfigFromFlags(cmd *cobra.Command) *ExecConfig {
	config := NewExecConfig()
	if input, err := cmd.Flags().GetString("input"); err == nil {
		config.Input = input
	}
	if timeout, err := cmd.Flags().GetInt("timeout"); err == nil {
		config.Timeout = timeout
	}
	return config
}

// parseExecInput decodes the --input flag, dereferencing @file arguments.
func parseExecInput(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}

	data := []byte(raw)
	if strings.HasPrefix(raw, "@") {
		var err error
		data, err = os.ReadFile(raw[1:])
		if err != nil {
			return nil, errors.Wrap(err, "failed to read input file")
		}
	}

	input := map[string]any{}
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, errors.Wrap(err, "input must be a JSON object")
	}
	return input, nil
}
