package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"taskflow/internal/config"
	"taskflow/internal/dates"
	"taskflow/internal/output"
	"taskflow/internal/storage"
	"taskflow/internal/task"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level
var (
	configPath string
	dbPath     string
	inMemory   bool
	jsonOutput bool
	yamlOutput bool
	formatter  output.Formatter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "A calendar-scoped to-do dashboard",
		Long:  "taskflow - tasks assigned to calendar days, with search, streaks and undoable deletes.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			switch {
			case jsonOutput:
				formatter = output.NewJSONFormatter()
			case yamlOutput:
				formatter = output.NewYAMLFormatter()
			default:
				formatter = output.NewHumanFormatter(dates.Today())
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDashboard()
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default $TASKFLOW_CONFIG or ~/.config/taskflow/config.toml)")
	flags.StringVar(&dbPath, "db", "", "SQLite database path, overrides db_path")
	flags.BoolVar(&inMemory, "memory", false, "Keep everything in memory for this run")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(
		uiCmd(),
		addCmd(),
		listCmd(),
		toggleCmd(),
		rmCmd(),
		statsCmd(),
		calendarCmd(),
		exportCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is everything a command needs, opened from the resolved config.
type app struct {
	cfg   config.Config
	kv    storage.KV
	repo  *storage.TaskRepo
	store *task.Store
	close func() error
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openApp wires config, the KV backend, the task repo and the store.
// Persistence diagnostics go to logger.
func openApp(cfg config.Config, logger *log.Logger) (*app, error) {
	a := &app{cfg: cfg, close: func() error { return nil }}
	if inMemory {
		a.kv = storage.NewMemory()
	} else {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
		}
		a.kv = db
		a.close = db.Close
	}
	a.repo = storage.NewTaskRepo(a.kv, cfg.StorageKey, logger)
	a.store = task.NewStore(a.repo.Load(context.Background()), task.WithPersister(a.repo))
	return a, nil
}

// mustOpen is openApp for the non-interactive commands, logging to stderr.
func mustOpen() *app {
	cfg, err := loadConfig()
	if err != nil {
		printError(err)
	}
	a, err := openApp(cfg, log.New(os.Stderr, "taskflow: ", 0))
	if err != nil {
		printError(err)
	}
	return a
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		log.Printf("close: %v", err)
	}
}

func printOutput(s string) {
	io.WriteString(os.Stdout, s) //nolint:errcheck // stdout write errors are unrecoverable
}

func printError(err error) {
	io.WriteString(os.Stdout, formatter.FormatError(err)) //nolint:errcheck // stdout write errors are unrecoverable
	os.Exit(1)
}
