package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"studentdb/internal/config"
	"studentdb/internal/logging"
	"studentdb/internal/records"

	"github.com/spf13/cobra"
)

var (
	flagStorage   string
	flagJournal   string
	flagNoJournal bool
	flagLogFile   string
	flagLogLevel  string
	flagEnv       string
)

var rootCmd = &cobra.Command{
	Use:           "studentdb",
	Short:         "Manage student record files from a terminal menu",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "storage directory (default ./"+config.DefaultStorageDir+")")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "", "operation journal database (default <storage>/journal.db)")
	rootCmd.PersistentFlags().BoolVar(&flagNoJournal, "no-journal", false, "disable the operation journal")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", `log file, "-" for stderr (default <storage>/studentdb.log)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", ".env", "dotenv file read before the environment")
}

// session is an opened manager plus the resources to release with it.
type session struct {
	mgr      *records.Manager
	log      *slog.Logger
	closeLog func() error
}

func (s *session) Close() {
	if err := s.mgr.Close(); err != nil {
		s.log.Error("close storage", "error", err)
	}
	s.closeLog()
}

// openSession resolves the configuration and opens the storage directory.
// A storage directory that cannot be opened is fatal.
func openSession() (*session, error) {
	cfg, err := config.Load(flagEnv, config.Overrides{
		StorageDir:  flagStorage,
		JournalPath: flagJournal,
		LogFile:     flagLogFile,
		LogLevel:    flagLogLevel,
		NoJournal:   flagNoJournal,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	mgr, err := records.New(records.Config{
		StorageDir:  cfg.StorageDir,
		JournalPath: cfg.JournalPath,
		Logger:      log,
	})
	if err != nil {
		closeLog()
		return nil, err
	}
	return &session{mgr: mgr, log: log, closeLog: closeLog}, nil
}

// withSession runs fn against an open session. Fatal storage errors come
// back unchanged so Execute exits with status 1.
func withSession(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// userError turns a recoverable failure into the message shown to the user.
func userError(err error) error {
	if err == nil || records.IsFatal(err) {
		return err
	}
	return errors.New(records.Message(err))
}
