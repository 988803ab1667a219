package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, Enter to play, Tab for the
scoreboard. After a run ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play the selected mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  shooter menu
  shooter menu --fps 30 --sound
  shooter menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	shooterCfg := loadShooterConfig()
	opts, cleanup := sessionOptions(shooterCfg)
	defer cleanup()

	width, height := terminalSize()
	cfg := runtimeConfig(width, height, config.ModeEasy)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(cfg.ScreenW, cfg.ScreenH, opts)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		cfg.Mode = menuResult.Mode.String()

		// Fresh seed for each run unless one was given
		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		game := shooter.NewWithConfig(shooterCfg)
		goBack, err := tui.Run(game, runCfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}

		// Loop back to menu unless the player quit
		if !goBack {
			break
		}
	}
}
