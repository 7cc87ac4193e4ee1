package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/answerview/internal/config"
	"github.com/mithrel/answerview/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// globalFlagKeys maps persistent flags to config keys.
var globalFlagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "answerview",
		Short:         "Render assistant answers and SQL execution results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applyConfigFlagOverrides(cmd, v, mergeKeys(globalFlagKeys, commandFlagKeys(cmd)))

			app, err := wire.BuildApp(cmd.Context(), v)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			app.Log.Debug().Str("command", cmd.CommandPath()).Str("config", v.ConfigFileUsed()).Msg("starting")

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, app))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace|debug|info|warn|error")
	cmd.PersistentFlags().String("log-format", "", "log format: console|json")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newSplitCmd())
	cmd.AddCommand(newGateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}
