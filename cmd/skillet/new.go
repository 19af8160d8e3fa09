package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jingkaihe/skillet/pkg/parser"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/jingkaihe/skillet/pkg/skill"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type ScaffoldConfig struct {
	Dir         string
	Description string
}

func NewScaffoldConfig() *ScaffoldConfig {
	return &ScaffoldConfig{
		Dir:         ".",
		Description: "Describe what this skill does",
	}
}

const starterScript = `#!/usr/bin/env bash
# Echoes the JSON input back inside a success envelope.
input=$(cat)
echo "{\"status\": \"success\", \"data\": $input}"
`

var newCmd = &cobra.Command{
	Use:   "new <skill-name>",
	Short: "Scaffold a new skill bundle",
	Long: `Create a new skill bundle with a starter SKILL.md manifest and an
example tool script.

Examples:
  skillet new deploy-tools
  skillet new deploy-tools --dir ~/.skillet/skills --description "Deployment helpers"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getScaffoldConfigFromFlags(cmd)
		name := args[0]

		md := skill.Metadata{
			Name:        name,
			Description: config.Description,
			Version:     "0.1.0",
			Type:        skill.TypeWorkflow,
		}
		if err := md.Validate(); err != nil {
			presenter.Error(err, "Invalid skill name or description")
			os.Exit(1)
		}

		root := filepath.Join(config.Dir, name)
		if _, err := os.Stat(root); err == nil {
			presenter.Error(errors.Errorf("directory already exists: %s", root), "Cannot scaffold skill")
			os.Exit(1)
		}

		frontmatter, err := yaml.Marshal(md)
		if err != nil {
			presenter.Error(err, "Failed to encode skill metadata")
			os.Exit(1)
		}

		manifest := fmt.Sprintf("---\n%s---\n\n# %s\n\nDescribe when and how an agent should use this skill.\n\n## Usage\n\n1. Outline the workflow steps here.\n", frontmatter, name)

		if err := os.MkdirAll(filepath.Join(root, "scripts"), 0o755); err != nil {
			presenter.Error(err, "Failed to create bundle directories")
			os.Exit(1)
		}
		if err := os.WriteFile(filepath.Join(root, parser.ManifestName), []byte(manifest), 0o644); err != nil {
			presenter.Error(err, "Failed to write manifest")
			os.Exit(1)
		}
		if err := os.WriteFile(filepath.Join(root, "scripts", "example.sh"), []byte(starterScript), 0o755); err != nil {
			presenter.Error(err, "Failed to write example script")
			os.Exit(1)
		}

		presenter.Success(fmt.Sprintf("Created skill '%s' at %s", name, root))
		presenter.Info("Add executable tools under scripts/ and reference files under references/")
	},
}

func init() {
	defaults := NewScaffoldConfig()
	newCmd.Flags().StringP("dir", "d", defaults.Dir, "Directory to create the bundle in")
	newCmd.Flags().String("description", defaults.Description, "Skill description for the manifest")

	rootCmd.AddCommand(newCmd)
}

func getScaffoldConfigFromFlags(cmd *cobra.Command) *ScaffoldConfig {
	config := NewScaffoldConfig()
	if dir, err := cmd.Flags().GetString("dir"); err == nil {
		config.Dir = dir
	}
	if description, err := cmd.Flags().GetString("description"); err == nil {
		config.Description = description
	}
	return config
}
