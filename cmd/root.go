package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/config"
	"github.com/abhisek/quirk/internal/scores"
)

var (
	// cfg is the resolved configuration, set before any command runs.
	cfg *config.Config

	logger  *slog.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "quirk",
	Short: "Self-assessment questionnaires with score charts",
	Long:  "Quirk records questionnaire scores over time and charts how each group of answers changes.",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to TOML config file (default $XDG_CONFIG_HOME/quirk/config.toml)")
	pf.String("data-dir", "", "Directory for score data (overrides QUIRK_DATA_DIR)")
	pf.String("store", "", "Score backend: json or sqlite (overrides QUIRK_STORE)")
	pf.String("log-file", "", "Log file path (overrides QUIRK_LOG_FILE)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies flag overrides and opens the log.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, c)
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	w, err := openLog(c.LogFile)
	if err != nil {
		// Logging must never stop the app.
		fmt.Fprintf(os.Stderr, "warning: %v; logging disabled\n", err)
		w = io.Discard
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
	slog.SetDefault(logger)
	logger.Debug("config loaded",
		slog.String("data_dir", c.DataDir),
		slog.String("store", c.Store),
	)
	return nil
}

// applyFlagOverrides gives explicitly set flags priority over config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("data-dir"); v != "" {
		if c.LogFile == filepath.Join(c.DataDir, "quirk.log") {
			c.LogFile = filepath.Join(v, "quirk.log")
		}
		c.DataDir = v
	}
	if v, _ := flags.GetString("store"); v != "" {
		c.Store = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		c.LogFile = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		c.LogLevel = v
	}
}

func openLog(path string) (io.Writer, error) {
	if path == "" {
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	return f, nil
}

// chartOptions sizes charts built outside the TUI from the chart config.
func chartOptions(c *config.Config) []chart.Option {
	return []chart.Option{
		chart.WithSize(c.Chart.MinWidth, c.Chart.Height),
		chart.WithMinAutoWidth(c.Chart.MinWidth),
	}
}

// openStore opens the configured score backend.
func openStore() (scores.Store, error) {
	st, err := scores.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	return st, nil
}

// resolveQuestionnaire finds a definition file: an existing path is used as
// is, otherwise name is looked up in the questionnaire directory.
func resolveQuestionnaire(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	for _, candidate := range []string{
		filepath.Join(cfg.QuestionnaireDir, name),
		filepath.Join(cfg.QuestionnaireDir, name+".json"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("questionnaire %q not found (looked in %s)", name, cfg.QuestionnaireDir)
}
