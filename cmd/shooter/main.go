// shooter is a space shoot-'em-up for the terminal.
//
// Usage:
//
//	shooter play             - Play a run (--mode easy|medium|hard)
//	shooter menu             - Pick a mode interactively
//	shooter serve            - Start SSH server for remote play
//	shooter scores           - Show and edit the scoreboard
//	shooter modes            - Show the mode profiles
//	shooter list             - List available games
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/shooter.db)
//	--config <path>    - Custom shooter config YAML
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	_ "github.com/vovakirdan/tui-shooter/internal/games/shooter" // registers the game
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

// logger receives diagnostics from every command. It writes to --log-file,
// or nowhere, so it cannot corrupt the alternate screen.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

// stderr is for warnings printed before or after a TUI runs.
var stderr = log.NewWithOptions(os.Stderr, log.Options{Prefix: "shooter"})

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "Space Shooter - a shoot-'em-up in your terminal",
	Long: `Space Shooter puts your ship at the bottom of the field and enemies
at the top. Shoot them before they get past you or crash into you.

Available commands:
  play     - Play a run directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View and edit high scores
  modes    - Show the mode profiles
  list     - Show registered games

Examples:
  shooter play --mode hard
  shooter menu --sound
  shooter serve --ssh :2222
  shooter scores top --mode easy`,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/shooter.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom shooter config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging points the shared logger at --log-file.
func setupLogging(_ *cobra.Command, _ []string) error {
	if flagLogFile == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
		Level:           log.DebugLevel,
	})
	return nil
}

// loadShooterConfig loads the gameplay config, warning on stderr when it
// falls back to defaults.
func loadShooterConfig() config.ShooterConfig {
	cfg, err := config.LoadShooter(flagConfig)
	if err != nil {
		stderr.Warn("using default config", "error", err)
		logger.Warn("using default config", "error", err)
	}
	return cfg
}

// runtimeConfig builds the platform config for a screen of the given size.
func runtimeConfig(width, height int, mode config.Mode) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Mode:     mode.String(),
	}
}

// playerName resolves the name recorded with runs.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "Player"
}
