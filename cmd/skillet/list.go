package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/jingkaihe/skillet/pkg/skill"
	"github.com/spf13/cobra"
)

type ListConfig struct {
	JSON bool
	Tags []string
	Type string
}

func NewListConfig() *ListConfig {
	return &ListConfig{
		JSON: false,
		Tags: nil,
		Type: "",
	}
}

type listEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available skills",
	Long:  `List all skills discovered in the configured skill directories.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		ctx := cmd.Context()

		c, err := client.NewFromViper(ctx)
		if err != nil {
			presenter.Error(err, "Failed to initialize skill client")
			os.Exit(1)
		}

		filter := skill.SearchQuery{Tags: config.Tags, Type: skill.Type(config.Type)}
		var listed []*skill.Metadata
		for _, md := range c.ListSkills(ctx) {
			if filter.Matches(md) {
				listed = append(listed, md)
			}
		}
		sort.Slice(listed, func(i, j int) bool { return listed[i].Name < listed[j].Name })

		if config.JSON {
			entries := make([]listEntry, 0, len(listed))
			for _, md := range listed {
				entries = append(entries, listEntry{
					Name:        md.Name,
					Description: md.Description,
					Version:     md.Version,
					Type:        string(md.Type),
					Tags:        md.Tags,
				})
			}
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode skill list")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		if len(listed) == 0 {
			presenter.Info("No skills found")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t-------\t----\t-----------")

		for _, md := range listed {
			description := md.Description
			if len(description) > 60 {
				description = description[:57] + "..."
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", md.Name, md.Version, md.Type, description)
		}
		tw.Flush()
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().Bool("json", defaults.JSON, "Output as JSON")
	listCmd.Flags().StringSlice("tags", defaults.Tags, "Only show skills carrying any of these tags")
	listCmd.Flags().String("type", defaults.Type, "Only show skills of this type")

	rootCmd.AddCommand(listCmd)
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if jsonOut, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = jsonOut
	}
	if tags, err := cmd.Flags().GetStringSlice("tags"); err == nil {
		config.Tags = tags
	}
	if skillType, err := cmd.Flags().GetString("type"); err == nil {
		config.Type = skillType
	}
	return config
}
