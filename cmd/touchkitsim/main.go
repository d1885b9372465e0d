// Command touchkitsim runs touchkit screens on a desktop, or renders them to PNG.
//
// Configuration is read from touchkitsim.yaml in the touchkit config directory or the working directory,
// and from TOUCHKIT_* environment variables. A .env file in the working directory is loaded first.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "touchkitsim",
		Short: "Touch display simulator",
		Long:  "touchkitsim - run touchkit screens in a window, or render them to PNG",
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Show the demo screen in a window",
		Long:  "Show the demo screen in a devdraw window. The left mouse button touches the screen. Touches are also read from a serial port or websocket if configured.",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot file.png [x,y ...]",
		Short: "Render the demo screen to PNG",
		Long:  "Render the demo screen without a window, tapping at each x,y in turn, and write the result to a PNG file.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  snapshot,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd, snapshotCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setup reads the config and installs the default logger.
func setup() (Config, error) {
	cfg, err := NewLoader(cfgFile).Read()
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	lvl, err := cfg.Level()
	if err != nil {
		return cfg, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return cfg, nil
}
