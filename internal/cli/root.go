// Package cli wires the demo binary: flag and config handling, logging
// setup, and the Bubble Tea program hosting the paged list.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/richkazz/infinitelist/internal/config"
	"github.com/richkazz/infinitelist/internal/demo"
	"github.com/richkazz/infinitelist/pagedlist"
	"github.com/richkazz/infinitelist/source"
)

// ErrNotATerminal is returned when stdout is not a TTY.
var ErrNotATerminal = errors.New("stdout is not a terminal")

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the demo binary. Flags
// override values from the optional YAML config file.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "infinitelist",
		Short:   "Infinite paged list demo",
		Long:    "infinitelist: an infinitely-scrolling paged list for Bubble Tea, demonstrated against a synthetic data source",
		Version: ver,
		Example: `  infinitelist
  infinitelist --page-size 10 --fail-every 4
  infinitelist --config demo.yaml --log-file /tmp/infinitelist.log --debug`,
		RunE: runDemo,
	}

	cmd.Flags().String("config", "", "path to a YAML config file")
	cmd.Flags().Int("page-size", 0, "items requested per page")
	cmd.Flags().Int("first-page", 0, "cursor of the first page")
	cmd.Flags().Float64("threshold", -1, "prefetch distance from the bottom, in lines")
	cmd.Flags().Int("total", 0, "number of records in the synthetic source")
	cmd.Flags().Int("latency", -1, "simulated fetch latency in milliseconds")
	cmd.Flags().Int("fail-every", 0, "make every Nth fetch fail (0 disables)")
	cmd.Flags().String("log-file", "", "write logs to this file instead of stderr")
	cmd.Flags().Bool("debug", false, "enable debug logging")

	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := config.InitLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()
	logger = log.With().Str("component", "cli").Logger()

	if !isTerminal(os.Stdout) {
		return ErrNotATerminal
	}

	src := source.NewCached[demo.Record](demo.NewSource(
		cfg.Demo.Total,
		time.Duration(cfg.Demo.LatencyMS)*time.Millisecond,
		cfg.Demo.FailEvery,
	))

	listCfg := pagedlist.Config{
		PageSize:     cfg.PageSize,
		FirstPageKey: cfg.FirstPage,
	}.WithScrollThreshold(cfg.Threshold).WithLogger(log)

	list, err := pagedlist.New(cmd.Context(), source.Fetch[demo.Record](src), renderRecord, listCfg)
	if err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	list.SetIndicators(pagedlist.Indicators{
		Separator: func(int) string { return "  ·" },
		Padding:   1,
	})
	list.ShowPagePosition(true)

	app := newAppModel(list, src)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	logger.Info().Int("page_size", cfg.PageSize).Int("total", cfg.Demo.Total).Msg("starting demo")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// loadConfig merges the config file with flag overrides. Flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetInt("page-size"); v > 0 {
		cfg.PageSize = v
	}
	if cmd.Flags().Changed("first-page") {
		cfg.FirstPage, _ = cmd.Flags().GetInt("first-page")
	}
	if v, _ := cmd.Flags().GetFloat64("threshold"); v >= 0 {
		cfg.Threshold = v
	}
	if v, _ := cmd.Flags().GetInt("total"); v > 0 {
		cfg.Demo.Total = v
	}
	if v, _ := cmd.Flags().GetInt("latency"); v >= 0 {
		cfg.Demo.LatencyMS = v
	}
	if cmd.Flags().Changed("fail-every") {
		cfg.Demo.FailEvery, _ = cmd.Flags().GetInt("fail-every")
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Logging.File = v
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
