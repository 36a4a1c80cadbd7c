// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-research/internal/completion"
	"github.com/pdiddy/lead-research/internal/lead"
	"github.com/pdiddy/lead-research/internal/logging"
	"github.com/pdiddy/lead-research/internal/research"
	"github.com/pdiddy/lead-research/internal/secrets"
	"github.com/pdiddy/lead-research/internal/tavily"
	"github.com/pdiddy/lead-research/pkg/types"
)

func newResearchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Research the lead and print the report",
		Long: `Research looks up the lead's company and the lead, then asks the chat
model for a report. A failed lookup is embedded in the prompt as an error
message and the analysis still runs. The report is printed under the
"=== LEAD RESEARCH REPORT ===" banner.

Without --lead, the lead comes from the "lead:" section of the config file,
or the built-in demo lead when the config has none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResearch(cmd, v)
		},
	}

	cmd.Flags().String("lead", "", "YAML file with the lead record")
	cmd.Flags().String("model", "", "chat model identifier (default gpt-4o-mini)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default: none)")
	cmd.Flags().String("tavily-url", "", "Tavily API base URL")
	cmd.Flags().String("openai-url", "", "OpenAI API base URL")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().String("log-format", "", "log format: console or json")
	cmd.Flags().String("record", "", "write the full run record as JSON to this file")

	return cmd
}

// runRecord is the --record output.
type runRecord struct {
	RunID           string         `json:"run_id"`
	StartedAt       time.Time      `json:"started_at"`
	Model           string         `json:"model"`
	Lead            types.LeadInfo `json:"lead"`
	CompanyContext  string         `json:"company_context"`
	CompanyDegraded bool           `json:"company_degraded"`
	PersonContext   string         `json:"person_context"`
	PersonDegraded  bool           `json:"person_degraded"`
	Report          string         `json:"report"`
	ReportDegraded  bool           `json:"report_degraded"`
}

func runResearch(cmd *cobra.Command, v *viper.Viper) error {
	err := runPipeline(cmd, v)
	if secrets.IsConfigError(err) {
		return err
	}
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "An error occurred during research: %v\n", err)
	}
	return nil
}

// loadCredentials populates the environment from the env file, reads the
// secrets directory, and resolves both keys. A file that cannot be loaded
// is reported on stderr and skipped; only unresolved keys are an error.
func loadCredentials(cmd *cobra.Command) (secrets.Credentials, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	errOut := cmd.ErrOrStderr()

	if envFile != "" {
		if _, err := secrets.LoadDotEnv(envFile); err != nil {
			fmt.Fprintf(errOut, "warning: %v\n", err)
		}
	}
	files, err := secrets.Load(secretsDir)
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
	}
	return secrets.Resolve(os.LookupEnv, files)
}

// runPipeline checks credentials before building anything else, so a
// *secrets.ConfigError is returned without touching either service.
func runPipeline(cmd *cobra.Command, v *viper.Viper) error {
	creds, err := loadCredentials(cmd)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, v, creds)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	leadPath, _ := cmd.Flags().GetString("lead")
	var fromConfig types.LeadInfo
	if err := v.UnmarshalKey("lead", &fromConfig); err != nil {
		return fmt.Errorf("decoding lead from config: %w", err)
	}
	info, err := lead.Resolve(leadPath, fromConfig)
	if err != nil {
		return err
	}

	rec := runRecord{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Model:     cfg.Completion.Model,
		Lead:      info,
	}
	logger = logger.With(zap.String("run_id", rec.RunID))
	logger.Info("starting research", zap.String("lead", info.Name), zap.String("company", info.Company), zap.String("model", rec.Model))

	searchClient := tavily.NewClient(cfg.Search, nil)
	completer := completion.NewOpenAI(cfg.Completion, nil)

	out := cmd.OutOrStdout()
	r := research.NewResearcher(searchClient, completer, research.Options{
		Model:  cfg.Completion.Model,
		Out:    out,
		Logger: logger,
	})

	outcome, err := research.Run(cmd.Context(), r, info, out)
	if err != nil {
		return err
	}
	logger.Info("research finished",
		zap.Bool("company_degraded", outcome.Company.Degraded()),
		zap.Bool("person_degraded", outcome.Person.Degraded()),
		zap.Bool("report_degraded", outcome.Report.Degraded()),
		zap.Duration("elapsed", time.Since(rec.StartedAt)))

	recordPath, _ := cmd.Flags().GetString("record")
	if recordPath == "" {
		return nil
	}
	rec.CompanyContext = outcome.Company.String()
	rec.CompanyDegraded = outcome.Company.Degraded()
	rec.PersonContext = outcome.Person.String()
	rec.PersonDegraded = outcome.Person.Degraded()
	rec.Report = outcome.Report.String()
	rec.ReportDegraded = outcome.Report.Degraded()
	return writeRecord(recordPath, rec)
}

// buildConfig merges defaults, the config file, LEAD_RESEARCH_* variables,
// and explicitly set flags, in increasing precedence.
func buildConfig(cmd *cobra.Command, v *viper.Viper, creds secrets.Credentials) (types.Config, error) {
	v.SetDefault("search.base_url", tavily.DefaultBaseURL)
	v.SetDefault("search.timeout", time.Duration(0))
	v.SetDefault("completion.model", completion.DefaultModel)
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Completion.Model, _ = flags.GetString("model")
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		cfg.Search.Timeout = timeout
		cfg.Completion.Timeout = timeout
	}
	if flags.Changed("tavily-url") {
		cfg.Search.BaseURL, _ = flags.GetString("tavily-url")
	}
	if flags.Changed("openai-url") {
		cfg.Completion.BaseURL, _ = flags.GetString("openai-url")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}

	userAgent := "lead-research/" + version
	cfg.Search.UserAgent = userAgent
	cfg.Completion.UserAgent = userAgent
	cfg.Search.APIKey = creds.TavilyAPIKey
	cfg.Completion.APIKey = creds.OpenAIAPIKey
	return cfg, nil
}

func writeRecord(path string, rec runRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	return nil
}
