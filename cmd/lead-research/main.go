// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lead-research CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the base command. Each call returns an independent
// command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "lead-research",
		Short: "Research a sales lead and draft a briefing report",
		Long: `lead-research gathers web-search context about a lead's company and the
lead themselves, then asks a chat model to synthesize a structured
briefing: company overview, decision-maker profile, opportunity analysis,
recommended approach, and risk assessment.

Credentials are read from OPENAI_API_KEY and TAVILY_API_KEY, which may be
set in the environment, a .env file, or .secrets/openai-api-key and
.secrets/tavily-api-key.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lead-research.yaml or ~/.config/lead-research/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment before credentials are resolved")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of key files (openai-api-key, tavily-api-key)")

	rootCmd.AddCommand(newResearchCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lead-research")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lead-research"))
		}
	}

	v.SetEnvPrefix("LEAD_RESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
