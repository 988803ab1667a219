package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the platform.`,
	Run:   runList,
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Show the mode profiles",
	Long: `Shows the gameplay parameters of each mode, after applying
the config file (see --config).`,
	Run: runModes,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'shooter play <id>' to play a game.")
}

func runModes(_ *cobra.Command, _ []string) {
	cfg := loadShooterConfig()

	fmt.Printf("  %-6s  %-8s  %6s  %6s  %11s  %5s  %5s\n",
		"Mode", "Enemies", "Player", "Bullet", "Enemy", "Spawn", "Lives")
	fmt.Printf("  %-6s  %-8s  %6s  %6s  %11s  %5s  %5s\n",
		"----", "-------", "------", "------", "-----", "-----", "-----")

	for _, mode := range config.Modes() {
		p := shooter.ProfileFor(mode, cfg)
		enemy := fmt.Sprintf("%.1f", p.EnemySpeed)
		if p.Jittered() {
			enemy = fmt.Sprintf("%.1f-%.1f", p.EnemySpeedMin, p.EnemySpeedMax)
		}
		fmt.Printf("  %-6s  %-8s  %6.1f  %6.1f  %11s  %5d  %5d\n",
			mode, p.EnemyShape, p.PlayerSpeed, p.BulletSpeed, enemy, p.SpawnIntervalTicks, p.StartingLives)
	}

	fmt.Println()
	fmt.Println("Speeds are field units per tick; spawn intervals are in ticks.")
}
