package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/audio"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagMode  string
	flagName  string
	flagSound bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a run",
	Long: `Start a run in the chosen mode.

Controls:
  Arrows/WASD  - Move
  Space        - Fire
  P            - Pause
  Esc          - End the run (score is kept)
  R            - Restart (after the run ends)
  B            - Back (after the run ends or while paused)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Modes:
  easy    - circles falling straight down, 3 lives
  medium  - weaving triangles, faster, 3 lives
  hard    - wide-weaving asteroids, fastest, 2 lives

Examples:
  shooter play
  shooter play --mode hard --name ace
  shooter play --mode medium --sound
  shooter play --config ./my-shooter.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagName, "name", "", "Player name recorded with scores (default $USER)")
		c.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	}
	playCmd.Flags().StringVar(&flagMode, "mode", "easy", "Mode: easy, medium, hard")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "shooter"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'shooter list' to see available games.")
		os.Exit(1)
	}

	mode, ok := config.LookupMode(flagMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want easy, medium or hard)\n", flagMode)
		os.Exit(1)
	}

	// Games load their own config; load it here too so problems are
	// reported before the screen switches.
	shooterCfg := loadShooterConfig()
	shooter.SetConfigPath(flagConfig)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts, cleanup := sessionOptions(shooterCfg)
	defer cleanup()

	width, height := terminalSize()
	cfg := runtimeConfig(width, height, mode)

	if _, err := tui.Run(game, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		cleanup()
		os.Exit(1)
	}
}

// sessionOptions opens the score store and optional audio for a local
// session. The returned cleanup releases both and is safe to call twice.
func sessionOptions(shooterCfg config.ShooterConfig) (tui.Options, func()) {
	opts := tui.Options{
		Player:  playerName(flagName),
		Shooter: shooterCfg,
		Logger:  logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		stderr.Warn("could not open scores database, scores will not be saved", "error", err)
		logger.Warn("could not open scores database", "error", err)
	} else {
		opts.Store = store
	}

	var sink *audio.Sink
	if flagSound {
		sink = audio.NewSink()
		if err := sink.Initialize(); err != nil {
			stderr.Warn("sound disabled", "error", err)
			logger.Warn("sound disabled", "error", err)
			sink = nil
		} else {
			opts.Sink = sink
		}
	}

	done := false
	cleanup := func() {
		if done {
			return
		}
		done = true
		if sink != nil {
			sink.Close()
		}
		if store != nil {
			store.Close()
		}
	}
	return opts, cleanup
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
