package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/platform/tui"
	"github.com/vovakirdan/lane-rush/internal/sensor"
)

var (
	flagMode     string
	flagSpeed    string
	flagTiltAddr string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run straight away, skipping the menu.

Controls:
  Left/A/H   - Steer left
  Right/D/L  - Steer right
  P/Space    - Pause
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Speed options:
  slow  - Base speed (default)
  fast  - 1.5x speed, spawns come faster too

Control options:
  buttons - Keyboard only (default)
  tilt    - Phone tilt; needs --tilt-listen, falls back to buttons without it

Examples:
  lanerush play
  lanerush play --speed fast
  lanerush play --mode tilt --tilt-listen :8088
  lanerush play --config ./my-lanerush.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "buttons", "Control mode: buttons, tilt")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "slow", "Speed setting: slow, fast")
	playCmd.Flags().StringVar(&flagTiltAddr, "tilt-listen", "", "Serve the phone tilt page on this address (e.g. :8088)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	mode, err := config.ParseControlMode(flagMode)
	if err != nil {
		return err
	}
	speed, err := config.ParseSpeedSetting(flagSpeed)
	if err != nil {
		return err
	}
	launch := config.Launch{Mode: mode, Speed: speed}

	return runLocal(cmd.Context(), func(env tui.Env) error {
		return tui.Run(env, launch, runtimeConfig())
	})
}

func runMenu(cmd *cobra.Command, _ []string) error {
	launch := config.Launch{Mode: config.ControlButtons, Speed: config.SpeedSlow}
	return runLocal(cmd.Context(), func(env tui.Env) error {
		return tui.RunSession(env, launch, runtimeConfig())
	})
}

// runLocal prepares logging, scores and the optional tilt feed, then runs
// the given UI in the local terminal.
func runLocal(ctx context.Context, run func(tui.Env) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "lanerush")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	book, closeBook := openBook(cfg, logger)
	defer closeBook()

	env := tui.Env{
		Context: ctx,
		Config:  cfg,
		Book:    book,
		Logger:  logger,
		Seed:    flagSeed,
	}

	if flagTiltAddr != "" {
		stopTilt, tiltErr := startTilt(&env, logger)
		if tiltErr != nil {
			// Tilt runs fall back to buttons when no feed is attached.
			logger.Warn("tilt feed unavailable", "addr", flagTiltAddr, "error", tiltErr)
			fmt.Fprintf(os.Stderr, "Warning: tilt feed unavailable: %v\n", tiltErr)
		} else {
			defer stopTilt()
		}
	}

	logger.Info("starting", "db", flagDBPath, "tilt", env.TiltURL)
	if err := run(env); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startTilt serves the phone page and wires its readings into whichever
// game is active.
func startTilt(env *tui.Env, logger *log.Logger) (func(), error) {
	relay := &tui.TiltRelay{}
	srv, err := sensor.Listen(flagTiltAddr, relay.Forward, logger.WithPrefix("tilt"))
	if err != nil {
		return nil, err
	}
	go func() {
		if serveErr := srv.Serve(); serveErr != nil {
			logger.Error("tilt server stopped", "error", serveErr)
		}
	}()

	env.Tilt = relay
	env.TiltURL = "http://" + srv.Addr()
	fmt.Fprintf(os.Stderr, "Tilt page: %s\n", env.TiltURL)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Close(ctx); err != nil {
			logger.Warn("closing tilt server", "error", err)
		}
	}, nil
}
