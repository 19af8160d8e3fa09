package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/spf13/cobra"
)

type InfoConfig struct {
	JSON bool
}

func NewInfoConfig() *InfoConfig {
	return &InfoConfig{
		JSON: false,
	}
}

type infoTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Script      string `json:"script"`
}

type infoResource struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type infoOutput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Author      string         `json:"author"`
	Type        string         `json:"type"`
	Tags        []string       `json:"tags"`
	Tools       []infoTool     `json:"tools"`
	Resources   []infoResource `json:"resources"`
	RootPath    string         `json:"root_path"`
}

var infoCmd = &cobra.Command{
	Use:   "info <skill-name>",
	Short: "Show detailed information about a skill",
	Long:  `Load a skill and print its metadata, tools, and resources.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getInfoConfigFromFlags(cmd)
		ctx := cmd.Context()

		c, err := client.NewFromViper(ctx)
		if err != nil {
			presenter.Error(err, "Failed to initialize skill client")
			os.Exit(1)
		}

		s, err := c.LoadSkill(ctx, args[0])
		if err != nil {
			presenter.Error(err, "Failed to load skill")
			os.Exit(1)
		}

		if config.JSON {
			output := infoOutput{
				Name:        s.Name(),
				Description: s.Description(),
				Version:     s.Metadata.Version,
				Author:      s.Metadata.Author,
				Type:        string(s.Metadata.Type),
				Tags:        s.Metadata.Tags,
				Tools:       make([]infoTool, 0, len(s.Tools)),
				Resources:   make([]infoResource, 0, len(s.Resources)),
				RootPath:    s.Root,
			}
			for _, tool := range s.Tools {
				output.Tools = append(output.Tools, infoTool{
					Name:        tool.Name,
					Description: tool.Description,
					Script:      tool.ScriptPath,
				})
			}
			for _, resource := range s.Resources {
				output.Resources = append(output.Resources, infoResource{
					Name:        resource.Name,
					Path:        resource.Path,
					Description: resource.Description,
				})
			}

			out, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode skill info")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("Skill: %s\n", s.Name())
		fmt.Printf("Description: %s\n", s.Description())
		if s.Metadata.Version != "" {
			fmt.Printf("Version: %s\n", s.Metadata.Version)
		}
		if s.Metadata.Author != "" {
			fmt.Printf("Author: %s\n", s.Metadata.Author)
		}
		if s.Metadata.Type != "" {
			fmt.Printf("Type: %s\n", s.Metadata.Type)
		}
		if len(s.Metadata.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(s.Metadata.Tags, ", "))
		}

		fmt.Printf("\nTools (%d):\n", len(s.Tools))
		for _, tool := range s.Tools {
			fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
		}

		fmt.Printf("\nResources (%d):\n", len(s.Resources))
		for _, resource := range s.Resources {
			description := resource.Description
			if description == "" {
				description = resource.Path
			}
			fmt.Printf("  - %s: %s\n", resource.Name, description)
		}

		fmt.Printf("\nLocation: %s\n", s.Root)
	},
}

func init() {
	defaults := NewInfoConfig()
	infoCmd.Flags().Bool("json", defaults.JSON, "Output as JSON")

	rootCmd.AddCommand(infoCmd)
}

func getInfoConfigFromFlags(cmd *cobra.Command) *InfoConfig {
	config := NewInfoConfig()
	if jsonOut, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = jsonOut
	}
	return config
}
