package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/homier/rcpool"
	"github.com/homier/rcpool/internal/socialgraph"
)

var (
	backend string
	mode    string
	pageLen int
	jsonOut bool
	verbose bool
	remove  []string
)

var rootCmd = &cobra.Command{
	Use:   "socialgraph",
	Short: "Build a small graph of players linked by weak references",
	Long: `socialgraph adds a handful of players, links them up as friends through
weak references and releases one of them. The resulting graph is printed, which
shows how the chosen storage reclaims players nobody references anymore.

With --backend=pool --mode=manual released players stay in the pool until they
are removed explicitly with --remove.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&backend, "backend", "pool", "Player storage: pool or rc")
	rootCmd.Flags().StringVar(&mode, "mode", "automatic", "Pool reclaim mode: automatic or manual")
	rootCmd.Flags().IntVar(&pageLen, "page-len", 2, "Number of slots per pool page")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pool and graph events")
	rootCmd.Flags().StringSliceVar(&remove, "remove", nil, "Players to remove after listing (manual mode only)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseMode(s string) (rcpool.Mode, error) {
	switch s {
	case "automatic", "auto":
		return rcpool.Automatic, nil
	case "manual":
		return rcpool.Manual, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, expected automatic or manual", s)
	}
}

func newStore(logger *slog.Logger) (socialgraph.Store, error) {
	switch backend {
	case "pool":
		m, err := parseMode(mode)
		if err != nil {
			return nil, err
		}

		if pageLen < 1 {
			return nil, fmt.Errorf("page length must be at least 1, got %d", pageLen)
		}

		return socialgraph.NewPoolStore(pageLen, m, logger), nil
	case "rc":
		return socialgraph.NewRcStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q, expected pool or rc", backend)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	store, err := newStore(logger)
	if err != nil {
		return err
	}

	g := socialgraph.New(store, logger)

	refs, err := socialgraph.Populate(g)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if err := render(out, g); err != nil {
		socialgraph.ReleaseAll(refs)

		return err
	}

	// Removal requires that nobody references the player anymore.
	socialgraph.ReleaseAll(refs)

	if len(remove) == 0 {
		return nil
	}

	for _, name := range remove {
		if err := g.Remove(name); err != nil {
			return err
		}
	}

	if !jsonOut {
		fmt.Fprintf(out, "--- after removing %d player(s)\n\n", len(remove))
	}

	return render(out, g)
}

func render(w io.Writer, g *socialgraph.Game) error {
	if jsonOut {
		return g.WriteJSON(w)
	}

	return g.WriteText(w)
}
