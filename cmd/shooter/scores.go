package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagScoresMode   string
	flagScoresLimit  int
	flagScorePlayer  string
	flagScoreValue   int
	flagScoreTime    time.Duration
	flagConfirmClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 scores, across all modes or for one mode.
Subcommands list, add, update, delete and clear the scoreboard.

Examples:
  shooter scores
  shooter scores --mode hard
  shooter scores list
  shooter scores add --player ann --mode easy --score 120
  shooter scores update 7 --score 130
  shooter scores delete 7
  shooter scores stats`,
	Args: cobra.NoArgs,
	RunE: runScoresTop,
}

var scoresTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the best scores",
	Args:  cobra.NoArgs,
	RunE:  runScoresTop,
}

var scoresListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every score with its id",
	Args:  cobra.NoArgs,
	RunE:  runScoresList,
}

var scoresAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a score by hand",
	Args:  cobra.NoArgs,
	RunE:  runScoresAdd,
}

var scoresUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the player, mode or score of an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoresUpdate,
}

var scoresDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoresDelete,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all scores, or all scores of one mode",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

var scoresStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show games played, best and average score per mode",
	Args:  cobra.NoArgs,
	RunE:  runScoresStats,
}

var scoresBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive scoreboard",
	Args:  cobra.NoArgs,
	RunE:  runScoresBrowse,
}

func init() {
	for _, c := range []*cobra.Command{scoresCmd, scoresTopCmd, scoresListCmd, scoresClearCmd} {
		c.Flags().StringVar(&flagScoresMode, "mode", "", "Only this mode (easy, medium, hard)")
	}
	for _, c := range []*cobra.Command{scoresCmd, scoresTopCmd} {
		c.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	}

	for _, c := range []*cobra.Command{scoresAddCmd, scoresUpdateCmd} {
		c.Flags().StringVar(&flagScorePlayer, "player", "", "Player name")
		c.Flags().StringVar(&flagScoresMode, "mode", "", "Mode (easy, medium, hard)")
		c.Flags().IntVar(&flagScoreValue, "score", 0, "Score")
	}
	scoresAddCmd.Flags().DurationVar(&flagScoreTime, "duration", 0, "Run duration, e.g. 1m30s")
	//nolint:errcheck // flags are defined just above
	scoresAddCmd.MarkFlagRequired("mode")
	//nolint:errcheck // flags are defined just above
	scoresAddCmd.MarkFlagRequired("score")

	scoresClearCmd.Flags().BoolVar(&flagConfirmClear, "yes", false, "Confirm deletion")

	scoresCmd.AddCommand(scoresTopCmd, scoresListCmd, scoresAddCmd, scoresUpdateCmd,
		scoresDeleteCmd, scoresClearCmd, scoresStatsCmd, scoresBrowseCmd)
}

// withStore opens the score database for the duration of fn.
func withStore(fn func(*storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// parseModeFlag parses a --mode value strictly. An empty value means
// every mode when allowAll is set.
func parseModeFlag(s string, allowAll bool) (config.Mode, error) {
	if s == "" && allowAll {
		return "", nil
	}
	mode, ok := config.LookupMode(s)
	if !ok {
		return "", fmt.Errorf("unknown mode %q (want easy, medium or hard)", s)
	}
	return mode, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid score id %q", s)
	}
	return id, nil
}

func modeTitle(mode config.Mode) string {
	if mode == "" {
		return "All modes"
	}
	return mode.String()
}

func runScoresTop(_ *cobra.Command, _ []string) error {
	mode, err := parseModeFlag(flagScoresMode, true)
	if err != nil {
		return err
	}
	if flagScoresLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", flagScoresLimit)
	}

	return withStore(func(store *storage.Store) error {
		scores, err := store.TopScores(mode, flagScoresLimit)
		if err != nil {
			return err
		}

		fmt.Printf("High Scores - %s\n", modeTitle(mode))
		fmt.Println()

		if len(scores) == 0 {
			fmt.Println("No scores recorded yet.")
			fmt.Println()
			fmt.Println("Play 'shooter play' to set the first high score!")
			return nil
		}

		printScores(scores, false)

		best, err := store.HighScore(mode)
		if err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
		return nil
	})
}

func runScoresList(_ *cobra.Command, _ []string) error {
	mode, err := parseModeFlag(flagScoresMode, true)
	if err != nil {
		return err
	}

	return withStore(func(store *storage.Store) error {
		scores, err := store.ListScores(mode)
		if err != nil {
			return err
		}
		if len(scores) == 0 {
			fmt.Println("No scores recorded yet.")
			return nil
		}
		printScores(scores, true)
		return nil
	})
}

func runScoresAdd(_ *cobra.Command, _ []string) error {
	mode, err := parseModeFlag(flagScoresMode, false)
	if err != nil {
		return err
	}
	player := playerName(flagScorePlayer)

	return withStore(func(store *storage.Store) error {
		id, err := store.AddScore(player, mode, flagScoreValue, flagScoreTime)
		if err != nil {
			return err
		}
		logger.Info("score added", "id", id, "player", player, "mode", mode, "score", flagScoreValue)
		fmt.Printf("Added score #%d: %s %s %d\n", id, player, mode, flagScoreValue)
		return nil
	})
}

func runScoresUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(store *storage.Store) error {
		entry, err := store.GetScore(id)
		if err != nil {
			return err
		}

		player, mode, score := entry.Player, entry.Mode, entry.Score
		if cmd.Flags().Changed("player") {
			player = flagScorePlayer
		}
		if cmd.Flags().Changed("mode") {
			if mode, err = parseModeFlag(flagScoresMode, false); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("score") {
			score = flagScoreValue
		}

		if err := store.UpdateScore(id, player, mode, score); err != nil {
			return err
		}
		logger.Info("score updated", "id", id, "player", player, "mode", mode, "score", score)
		fmt.Printf("Updated score #%d: %s %s %d\n", id, player, mode, score)
		return nil
	})
}

func runScoresDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(store *storage.Store) error {
		if err := store.DeleteScore(id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no score with id %d", id)
			}
			return err
		}
		logger.Info("score deleted", "id", id)
		fmt.Printf("Deleted score #%d\n", id)
		return nil
	})
}

func runScoresClear(_ *cobra.Command, _ []string) error {
	mode, err := parseModeFlag(flagScoresMode, true)
	if err != nil {
		return err
	}
	if !flagConfirmClear {
		return fmt.Errorf("refusing to clear %s without --yes", modeTitle(mode))
	}

	return withStore(func(store *storage.Store) error {
		n, err := store.ClearScores(mode)
		if err != nil {
			return err
		}
		logger.Info("scores cleared", "mode", modeTitle(mode), "count", n)
		fmt.Printf("Deleted %d scores (%s)\n", n, modeTitle(mode))
		return nil
	})
}

func runScoresStats(_ *cobra.Command, _ []string) error {
	return withStore(func(store *storage.Store) error {
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No scores recorded yet.")
			return nil
		}

		fmt.Printf("  %-6s  %5s  %6s  %8s  %s\n", "Mode", "Games", "Best", "Average", "Last played")
		fmt.Printf("  %-6s  %5s  %6s  %8s  %s\n", "----", "-----", "----", "-------", "-----------")
		for _, st := range stats {
			fmt.Printf("  %-6s  %5d  %6d  %8.1f  %s\n",
				st.Mode, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
		return nil
	})
}

func runScoresBrowse(_ *cobra.Command, _ []string) error {
	return withStore(func(store *storage.Store) error {
		width, height := terminalSize()
		_, err := tui.RunScoreboard(width, height, tui.Options{Store: store, Logger: logger})
		return err
	})
}

// printScores prints a score table, with ids when withID is set.
func printScores(scores []storage.ScoreEntry, withID bool) {
	if withID {
		fmt.Printf("  %-5s  ", "ID")
	} else {
		fmt.Print("  ")
	}
	fmt.Printf("%-4s  %-16s  %-6s  %6s  %7s  %s\n", "Rank", "Player", "Mode", "Score", "Time", "Date")
	if withID {
		fmt.Printf("  %-5s  ", "--")
	} else {
		fmt.Print("  ")
	}
	fmt.Printf("%-4s  %-16s  %-6s  %6s  %7s  %s\n", "----", "------", "----", "-----", "----", "----")

	for i, e := range scores {
		if withID {
			fmt.Printf("  %-5d  ", e.ID)
		} else {
			fmt.Print("  ")
		}
		played := time.Duration(e.DurationSec * float64(time.Second)).Round(time.Second)
		fmt.Printf("%-4d  %-16s  %-6s  %6d  %7s  %s\n",
			i+1, e.Player, e.Mode, e.Score, played, e.PlayedAt.Local().Format("2006-01-02 15:04"))
	}
}
