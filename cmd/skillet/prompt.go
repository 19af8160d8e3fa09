package main

import (
	"fmt"
	"os"

	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <skill-name>",
	Short: "Generate an agent prompt from a skill",
	Long: `Render a skill as an XML-formatted prompt block suitable for
inclusion in an agent's system prompt.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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

		fmt.Printf("<skill name=%q>\n", s.Name())
		fmt.Printf("<description>%s</description>\n", s.Description())
		fmt.Printf("<instructions>\n%s\n</instructions>\n", s.Instructions)

		if len(s.Tools) > 0 {
			fmt.Println("<tools>")
			for _, tool := range s.Tools {
				fmt.Printf("  <tool name=%q>%s</tool>\n", tool.Name, tool.Description)
			}
			fmt.Println("</tools>")
		}

		fmt.Println("</skill>")
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
