package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stickpad/stickpad/internal/config"
	"github.com/stickpad/stickpad/internal/db"
	"github.com/stickpad/stickpad/internal/logger"
	"github.com/stickpad/stickpad/internal/store"
	"github.com/stickpad/stickpad/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "stickpad",
	Short: "Stickpad - sticky notes with tags, trash and encryption",
	Long: `Stickpad is a sticky-notes application with tagging, pinning, a trash
bin with retention-based auto-cleanup, and optional per-note encryption.

Run 'stickpad' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Stickpad started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		database, err := db.OpenDefault()
		if err != nil {
			logger.Error("Failed to open database", logger.F("error", err))
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = database.Close()
			logger.Info("Database closed")
		}()

		notes := store.New(database)
		if err := notes.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}

		// The shell decides when the retention sweep runs: once, on load
		if err := notes.AutoCleanTrash(cmd.Context(), cfg.Trash()); err != nil {
			logger.Warn("Trash sweep failed", logger.F("error", err))
		}

		logger.Info("Launching TUI")
		m := tui.NewModel(notes, cfg)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Stickpad exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(detachCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(apiCmd)
}

// openStore opens the database and loads the note store. The caller must
// close the returned database handle.
func openStore(ctx context.Context) (*store.Store, *db.DB, error) {
	database, err := db.OpenDefault()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	notes := store.New(database)
	if err := notes.Load(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return notes, database, nil
}

// resolveNote finds a note by full id or unique prefix
func resolveNote(s *store.Store, idOrPrefix string) (string, error) {
	if _, ok := s.NoteByID(idOrPrefix); ok {
		return idOrPrefix, nil
	}
	var match string
	for _, n := range s.Notes() {
		if len(idOrPrefix) >= 4 && len(n.ID) >= len(idOrPrefix) && n.ID[:len(idOrPrefix)] == idOrPrefix {
			if match != "" {
				return "", fmt.Errorf("ambiguous note id: %s", idOrPrefix)
			}
			match = n.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("note not found: %s", idOrPrefix)
	}
	return match, nil
}
