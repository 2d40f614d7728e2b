package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/countdown/app"
	"github.com/lixenwraith/countdown/audio"
	"github.com/lixenwraith/countdown/config"
	"github.com/lixenwraith/countdown/countdown"
	"github.com/lixenwraith/countdown/event"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "countdown",
		Short:         "Terminal countdown timer with a digit keypad",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimer(cmd, cfgFile)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfgFile, "config", "", "Path to TOML config file (or $"+config.PathEnv+")")
	fs.String("duration", "500", "Initial duration as packed HHMMSS digits")
	fs.Duration("tick", countdown.DefaultTick, "Countdown refresh interval")
	fs.Bool("no-sound", false, "Disable the finish chime and key clicks")
	fs.Bool("millis", true, "Show milliseconds")
	fs.String("log-level", "", "Log level (trace, debug, info, warn, error), empty disables logging")
	fs.String("log-file", "logs/countdown.log", "Log file path")
	fs.Bool("debug", false, "Shorthand for --log-level=debug")

	cmd.AddCommand(newParseCmd(), newFormatCmd())
	return cmd
}

func runTimer(cmd *cobra.Command, cfgFile string) error {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug && cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}

	log, logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	sound := audio.NewSoundManager(cfg.Sound.Enabled)
	if err := sound.Initialize(); err != nil {
		log.WithError(err).Warn("audio unavailable, continuing without sound")
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	a := app.New(screen, cfg, app.WithSound(sound), app.WithLogger(log))
	loader.Watch(log, func(c *config.Config) {
		a.Post(event.ConfigReload(c))
	})
	return a.Run(cmd.Context())
}
