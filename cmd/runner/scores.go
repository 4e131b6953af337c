package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-runner/internal/registry"
	"github.com/vovakirdan/coin-runner/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show best runs for a game variant",
	Long: `Display the best runs (most coins) for the specified variant.
Without a variant, print a summary line for every variant.

Examples:
  runner scores
  runner scores runner
  runner scores runner_measured --limit 20
  runner scores runner --recent
  runner scores runner --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runSummary()
		return
	}
	gameID := args[0]

	info, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available games.")
		os.Exit(1)
	}
	title := info.Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs for %s.\n", title)
		return
	}

	var runs []storage.Run
	heading := "Best Runs"
	if flagRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(gameID, flagLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' and collect a coin to get on the board!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %s\n", "Rank", "Coins", "Ticks", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %s\n", "----", "-----", "-----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-7d  %s\n", i+1, r.Coins, r.Ticks, dateStr)
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("Best: %d coins  |  Runs: %d  |  Average: %.1f\n",
			stats.HighScore, stats.RunsCount, stats.AvgCoins)
	}
}

// runSummary prints per-variant statistics for every registered variant.
func runSummary() {
	if flagClear || flagRecent {
		fmt.Fprintln(os.Stderr, "Error: --clear and --recent need a game variant")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := writeSummary(os.Stdout, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
	}
}

// writeSummary writes one line per registered variant. Variants without
// runs are listed too so both clocks always show up.
func writeSummary(w io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Run Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s  %-5s  %-5s  %-7s  %-9s  %s\n", "Variant", "Runs", "Best", "Average", "Longest", "Last played")
	fmt.Fprintf(w, "  %-16s  %-5s  %-5s  %-7s  %-9s  %s\n", "-------", "----", "----", "-------", "-------", "-----------")

	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			fmt.Fprintf(w, "  %-16s  %-5d  %-5s  %-7s  %-9s  %s\n", info.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Fprintf(w, "  %-16s  %-5d  %-5d  %-7.1f  %-9d  %s\n",
			info.ID, st.RunsCount, st.HighScore, st.AvgCoins, st.BestTicks,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
