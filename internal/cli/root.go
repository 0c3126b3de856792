package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Flyrell/daygrid/internal/activity"
	"github.com/Flyrell/daygrid/internal/config"
	"github.com/Flyrell/daygrid/internal/logging"
	"github.com/Flyrell/daygrid/internal/schedule"
)

// skipAppAnnotation marks commands that run without config or store.
const skipAppAnnotation = "daygrid/skip-app"

// app is what every data command works against.
type app struct {
	homeDir string
	cfg     *config.Config
	store   *activity.Store
	log     *zap.Logger
}

func (a *app) evaluator() schedule.Evaluator {
	return a.cfg.Evaluator()
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) (*app, error) {
	if ctx := cmd.Context(); ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*app); ok {
			return a, nil
		}
	}
	return nil, errors.New("daygrid is not initialised")
}

// loadApp reads config, applies .env and environment overrides, and opens
// the logger and store.
func loadApp(homeDir, configPath string, debug bool) (*app, error) {
	if configPath == "" {
		configPath = config.DefaultPath(homeDir)
	}

	cfg, err := config.Load(configPath, homeDir)
	if err != nil {
		return nil, err
	}

	lookup, err := config.EnvLookup(".env")
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup, homeDir); err != nil {
		return nil, err
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.String("data_dir", cfg.DataDir),
		zap.String("weekly_anchor", cfg.WeeklyAnchor),
	)

	return &app{
		homeDir: homeDir,
		cfg:     cfg,
		store:   activity.NewStore(cfg.DataDir, logger),
		log:     logger,
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "daygrid",
		Short:         "Plan your day on a timeline with conflict checks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipAppAnnotation] != "" {
				return nil
			}
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			configPath, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")

			a, err := loadApp(homeDir, configPath, debug)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a, err := appFrom(cmd); err == nil {
				// stderr syncs fail on some terminals; nothing to recover.
				_ = a.log.Sync()
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.daygrid/config.yaml)")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")

	root.AddCommand(
		addCmd,
		editCmd,
		removeCmd,
		listCmd,
		showCmd,
		dayCmd,
		moveCmd,
		checkCmd,
		agendaCmd,
		versionCmd,
	)
	return root
}

func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}
