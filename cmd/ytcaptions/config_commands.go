package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytcaptions/internal/config"
	"ytcaptions/internal/language"
	"ytcaptions/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		overwrite  bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "init", "resolve path", err)
			}
			if _, err := os.Stat(target); err == nil && !overwrite {
				return services.Wrap(services.ErrValidation, "config", "init", target+" already exists (use --overwrite to replace it)", nil)
			}
			if err := config.CreateSample(target); err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "init", "", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit [transcripts] languages to set your preferred caption languages.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func initTarget(path string) (string, error) {
	if path = strings.TrimSpace(path); path == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(path)
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Config path", statusInfo, ctx.configPath, colorize))
			if _, err := os.Stat(ctx.configPath); err != nil {
				fmt.Fprintln(out, renderStatusLine("Config file", statusWarn, "not found; defaults were used", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Configuration", statusOK, "valid", colorize))
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := [][]string{
				{"http.base_url", cfg.HTTP.BaseURL},
				{"http.user_agent", cfg.HTTP.UserAgent},
				{"http.accept_language", cfg.HTTP.AcceptLanguage},
				{"http.timeout_seconds", strconv.Itoa(cfg.HTTP.TimeoutSeconds)},
				{"http.proxy_url", cfg.HTTP.ProxyURL},
				{"cookies.path", cfg.Cookies.Path},
				{"cookies.firefox_db", cfg.Cookies.FirefoxDB},
				{"transcripts.languages", describeLanguages(cfg.Transcripts.Languages)},
				{"transcripts.preserve_formatting", yesNo(cfg.Transcripts.PreserveFormatting)},
				{"transcripts.exclude_generated", yesNo(cfg.Transcripts.ExcludeGenerated)},
				{"transcripts.exclude_manually_created", yesNo(cfg.Transcripts.ExcludeManuallyCreated)},
				{"transcripts.continue_after_error", yesNo(cfg.Transcripts.ContinueAfterError)},
				{"transcripts.format", cfg.Transcripts.Format},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"logging.dir", cfg.Logging.Dir},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}
}

func describeLanguages(codes []string) string {
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code+" ("+language.DisplayName(code)+")")
	}
	return strings.Join(parts, ", ")
}
