package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	noteflow "github.com/noteflow/noteflow.go"
	"github.com/noteflow/noteflow.go/pkg/loadgate"
	"github.com/noteflow/noteflow.go/pkg/logger"
)

var (
	configPath string
	baseURL    string
	tokenFile  string
	logFile    string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "noteflow",
	Short: "A terminal client for the Noteflow notes service",
	Long: `noteflow keeps an authenticated local view of your notes on a remote
Noteflow server: list and search them, add new ones, archive, unarchive,
and delete.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the notes API")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Path to the persisted access token")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append JSON logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles everything a subcommand needs: config, logger, session,
// gateway, and the note collection wired to terminal affordances.
type app struct {
	cfg     Config
	log     *logger.LogData
	session *noteflow.Session
	client  *noteflow.Client
	notes   *noteflow.Collection
}

func newApp() (*app, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if tokenFile != "" {
		cfg.TokenFile = tokenFile
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	build := logger.New()
	if cfg.LogFile != "" {
		build.FromPath(cfg.LogFile)
	} else {
		build.Console()
	}
	log, err := build.Make()
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	zl := log.Logger
	if !verbose {
		zl = zl.Level(zerolog.InfoLevel)
	}

	session, err := noteflow.OpenSession(cfg.TokenFile)
	if err != nil {
		log.Close()
		return nil, err
	}

	client := noteflow.NewClient(cfg.BaseURL, session, noteflow.WithClientLogger(zl))
	notes := noteflow.NewCollection(client,
		noteflow.WithNotifier(terminalNotifier{}),
		noteflow.WithConfirm(confirmDelete),
		noteflow.WithBusyGate(loadgate.New(showBusy, clearBusy)),
		noteflow.WithCollectionLogger(zl),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		session: session,
		client:  client,
		notes:   notes,
	}, nil
}

func (a *app) close() {
	a.log.Close()
}

// requireUser resolves the persisted token into an identity, or tells the
// user to log in.
func (a *app) requireUser(ctx context.Context) (*noteflow.User, error) {
	user, err := a.session.Bootstrap(ctx, a.client)
	if err != nil {
		return nil, fmt.Errorf("could not reach the notes server: %w", err)
	}
	if user == nil {
		return nil, errors.New("not logged in; run 'noteflow login' first")
	}
	return user, nil
}
