package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/jingkaihe/skillet/pkg/skill"
	"github.com/spf13/cobra"
)

type SearchConfig struct {
	Tags []string
	Type string
	JSON bool
}

func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Tags: nil,
		Type: "",
		JSON: false,
	}
}

type searchEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for skills",
	Long: `Search skills by free-text query, tags, and type. The query matches
case-insensitively against skill names, descriptions, and tags.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getSearchConfigFromFlags(cmd)
		ctx := cmd.Context()

		query := skill.SearchQuery{
			Tags: config.Tags,
			Type: skill.Type(config.Type),
		}
		if len(args) > 0 {
			query.Query = args[0]
		}

		c, err := client.NewFromViper(ctx)
		if err != nil {
			presenter.Error(err, "Failed to initialize skill client")
			os.Exit(1)
		}

		matched := c.SearchSkills(ctx, query)

		if config.JSON {
			entries := make([]searchEntry, 0, len(matched))
			for _, s := range matched {
				entries = append(entries, searchEntry{
					Name:        s.Name(),
					Description: s.Description(),
					Tags:        s.Metadata.Tags,
				})
			}
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode search results")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		if len(matched) == 0 {
			presenter.Info("No skills found matching criteria")
			return
		}

		fmt.Printf("Found %d matching skill(s):\n\n", len(matched))
		for _, s := range matched {
			fmt.Printf("  %s\n", s.Name())
			fmt.Printf("    %s\n", s.Description())
			fmt.Println()
		}
	},
}

func init() {
	defaults := NewSearchConfig()
	searchCmd.Flags().StringSlice("tags", defaults.Tags, "Only match skills carrying any of these tags")
	searchCmd.Flags().String("type", defaults.Type, "Only match skills of this type")
	searchCmd.Flags().Bool("json", defaults.JSON, "Output as JSON")

	rootCmd.AddCommand(searchCmd)
}

func getSearchConfigFromFlags(cmd *cobra.Command) *SearchConfig {
	config := NewSearchConfig()
	if tags, err := cmd.Flags().GetStringSlice("tags"); err == nil {
		config.Tags = tags
	}
	if skillType, err := cmd.Flags().GetString("type"); err == nil {
		config.Type = skillType
	}
	if jsonOut, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = jsonOut
	}
	return config
}
