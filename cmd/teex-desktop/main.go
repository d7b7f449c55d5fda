package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/kabucey/teex/internal/config"
	"github.com/kabucey/teex/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

const singleInstanceID = "dev.teex.desktop"

func newRootCmd() *cobra.Command {
	var (
		debug      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:          "teex-desktop [paths...]",
		Short:        "Teex text editor",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgErr := config.Load(configPath)

			if err := logging.Init(logging.Options{
				Level: cfg.Log.Level,
				File:  cfg.Log.File,
				Debug: debug,
			}); err != nil {
				return err
			}
			defer logging.Close()

			log := logging.ForComponent(logging.CompShell)
			if cfgErr != nil {
				log.Warn().Err(cfgErr).Str("path", configPath).Msg("using default config")
			}

			app := NewApp(cfg, args)
			return run(app, cfg, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging and the web inspector")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "path to config.toml")
	return cmd
}

func run(app *App, cfg *config.Config, debug bool) error {
	isDev := debug || os.Getenv("WAILS_DEV") != "" || Version == "0.1.0-dev"

	logLevel := logger.INFO
	if isDev {
		logLevel = logger.DEBUG
	}

	return wails.Run(&options.App{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 30, G: 30, B: 30, A: 1},
		Menu:             app.menu.Build(),
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               singleInstanceID,
			OnSecondInstanceLaunch: app.onSecondInstanceLaunch,
		},
		Bind: []interface{}{
			app,
		},
		Logger:             newWailsLogger(logging.ForComponent("wails")),
		LogLevel:           logLevel,
		LogLevelProduction: logger.ERROR,
		Debug: options.Debug{
			OpenInspectorOnStartup: isDev,
		},
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
