package main

import (
	"fmt"
	"os"

	"github.com/jingkaihe/skillet/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLET")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillet")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Skillet CLI for managing and executing agent skills",
	Long:  `Skillet discovers, validates, and executes agent skills packaged as SKILL.md bundles.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLogLevel(viper.GetString("log_level"))
		logger.SetLogFormat(viper.GetString("log_format"))
	},
	// Default behavior is to show help if no arguments are provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func main() {
	// Add global flags
	rootCmd.PersistentFlags().StringSlice("skill-dirs", nil, "Directories to search for skills (overrides config and defaults)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	// Bind flags to viper
	viper.BindPFlag("skill_dirs", rootCmd.PersistentFlags().Lookup("skill-dirs"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
