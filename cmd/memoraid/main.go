package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/Jess-125/memoraid/internal/config"
	"github.com/Jess-125/memoraid/internal/scheduler"
	"github.com/Jess-125/memoraid/internal/storage"
	"github.com/Jess-125/memoraid/internal/update"
	"github.com/Jess-125/memoraid/pkg/logutils"
)

func defaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".memoraid")
	}
	return "data"
}

func main() {
	var (
		dataDir    string
		configPath string
		logLevel   string
		logFile    string
	)

	app := &cli.Command{
		Name:  "memoraid",
		Usage: "Task and reminder manager for elderly users and caregivers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory holding tasks.csv and wellness.csv",
				Sources:     cli.EnvVars("MEMORAID_DATA_DIR"),
				Value:       defaultDataDir(),
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (defaults to <data-dir>/memoraid.yml)",
				Sources:     cli.EnvVars("MEMORAID_CONFIG"),
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("MEMORAID_LOG_LEVEL"),
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/memoraid.log)",
				Sources:     cli.EnvVars("MEMORAID_LOG_FILE"),
				Destination: &logFile,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// the TUI owns the terminal, so logs always go to a file
			if logFile == "" {
				logFile = filepath.Join(dataDir, "memoraid.log")
			}
			logger, closeLog, err := logutils.New(logLevel, logFile)
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			defer closeLog()

			if configPath == "" {
				configPath = filepath.Join(dataDir, "memoraid.yml")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.DataDir = dataDir

			store := storage.NewStore(cfg.TasksPath())
			repo := storage.NewRepository(store, logger.With().Str("component", "repository").Logger())
			engine := scheduler.NewEngine(repo, scheduler.MatchPolicy(cfg.ReminderPolicy), logger.With().Str("component", "scheduler").Logger())
			wellness := storage.NewWellnessStore(cfg.WellnessPath())

			logger.Info().
				Str("data_dir", dataDir).
				Str("policy", string(engine.Policy())).
				Int("users", len(cfg.Users)).
				Msg("starting")

			program := tea.NewProgram(update.NewModel(cfg, repo, engine, wellness), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run ui: %w", err)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "memoraid failed: %v\n", err)
		os.Exit(1)
	}
}
