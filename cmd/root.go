package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/secaware/internal/app"
	"github.com/abhisek/secaware/internal/config"
	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "secaware",
	Short: "Security awareness course for the terminal",
	Long:  "Guardianes Digitales: a short security awareness course on passwords and phishing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("content", "", "Path to a course JSON file (overrides SECAWARE_CONTENT)")
	pf.String("score-policy", "", "Total score policy: sum or running (overrides SECAWARE_SCORE_POLICY)")
	pf.String("log-file", "", "Write debug logs to this file (overrides SECAWARE_LOG_FILE)")
	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")

	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads SECAWARE_* settings and applies flags on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if p, _ := flags.GetString("content"); p != "" {
		cfg.ContentFile = p
	}
	if p, _ := flags.GetString("score-policy"); p != "" {
		cfg.ScorePolicy = p
	}
	if p, _ := flags.GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	if flags.Lookup("no-welcome") != nil && flags.Changed("no-welcome") {
		cfg.NoWelcome, _ = flags.GetBool("no-welcome")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadCatalog returns the embedded course unless a content file is set.
func loadCatalog(cfg config.Config) (*course.Catalog, error) {
	if cfg.ContentFile == "" {
		return course.Default(), nil
	}
	c, err := course.LoadFile(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return c, nil
}

// openLogger returns a logger writing to cfg.LogFile, or one that discards
// everything. The returned close func is never nil.
func openLogger(cfg config.Config, sessionID string) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "secaware")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("session", sessionID), f.Close, nil
}

// session bundles what both front ends need.
type session struct {
	id      string
	cfg     config.Config
	catalog *course.Catalog
	store   *progress.Store
	logger  *slog.Logger
	close   func() error
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger, closeLog, err := openLogger(cfg, id)
	if err != nil {
		return nil, err
	}
	logger.Info("session started", "modules", catalog.Len(), "policy", policy)

	return &session{
		id:      id,
		cfg:     cfg,
		catalog: catalog,
		store:   progress.NewStore(progress.WithPolicy(policy), progress.WithLogger(logger)),
		logger:  logger,
		close:   closeLog,
	}, nil
}

// runApp builds the session and launches the TUI.
func runApp(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	err = app.Run(app.Options{
		Catalog:     s.catalog,
		Store:       s.store,
		Logger:      s.logger,
		SessionID:   s.id,
		SkipWelcome: s.cfg.NoWelcome,
	})
	s.logger.Info("session ended", "total", s.store.GetProgress().TotalScore)
	return err
}
