package main

import (
	"encoding/json"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/config"
	"github.com/saturnines/zero-e2e/pkg/errors"
	"github.com/saturnines/zero-e2e/pkg/logging"
)

// app carries the state shared by every command after flag parsing.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "zero-e2e",
		Short:         "End-to-end toolkit for the GraphQLZero users and albums API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (defaults and ZERO_* env vars apply without one)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newUserCmd(a),
		newAlbumCmd(a),
		newRenderCmd(),
		newSeedCmd(a),
		newScenariosCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.WrapError(err, errors.ErrConfiguration, "load .env")
	}

	cfg, err := config.NewDefaultLoader().Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), cfg.Logging)
	a.logger.Debug("config loaded", slog.String("endpoint", cfg.URL()))
	return nil
}

func (a *app) api() (*api.API, error) {
	return api.NewFromConfig(a.cfg, a.logger)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
