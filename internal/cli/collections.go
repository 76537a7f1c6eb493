package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/the-dev-tools/folio/pkg/movable"
)

func printEntries(w io.Writer, entries []movable.Entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []movable.Entry{}
		}
		return enc.Encode(entries)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tID\tLABEL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", e.SortOrder, e.ID, e.Label)
	}
	return tw.Flush()
}

func newListCmd(e *env) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:       "list <collection>",
		Short:     "List a collection in display order",
		Args:      cobra.ExactArgs(1),
		ValidArgs: collectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engines, closeDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()
			engine, err := engines.Parse(args[0])
			if err != nil {
				return err
			}
			entries, err := engine.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// parseMove reads a "from:to" pair of 1-based positions into 0-based indices.
func parseMove(s string) (from, to int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: move %q must look like from:to", movable.ErrValidation, s)
	}
	from, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: move %q: %w", movable.ErrValidation, s, err)
	}
	to, err = strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: move %q: %w", movable.ErrValidation, s, err)
	}
	return from - 1, to - 1, nil
}

func newReorderCmd(e *env) *cobra.Command {
	var (
		moves  []string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "reorder <collection> --move from:to [--move from:to ...]",
		Short: "Move records and commit the new order in one transaction",
		Long: `reorder applies each --move in turn to a staged copy of the collection and
commits the result. Positions are 1-based. With --dry-run the staged order is
printed and nothing is written.

` + staleCacheNote,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(moves) == 0 {
				return fmt.Errorf("%w: at least one --move is required", movable.ErrValidation)
			}
			_, engines, closeDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()
			engine, err := engines.Parse(args[0])
			if err != nil {
				return err
			}
			session, err := engine.OpenSession(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range moves {
				from, to, err := parseMove(m)
				if err != nil {
					return err
				}
				if from == to {
					continue
				}
				if !session.Move(from, to) {
					return fmt.Errorf("%w: move %s is out of range for %d records", movable.ErrValidation, m, session.Len())
				}
			}
			out := cmd.OutOrStdout()
			if !session.HasChanges() {
				fmt.Fprintln(out, "order unchanged")
				return nil
			}
			if dryRun {
				return printEntries(out, session.Items(), false)
			}
			if err := engine.Commit(cmd.Context(), session); err != nil {
				return err
			}
			return printEntries(out, session.Items(), false)
		},
	}
	cmd.Flags().StringArrayVar(&moves, "move", nil, "from:to positions, 1-based; repeatable")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the staged order without committing")
	return cmd
}

// staleCacheNote warns that folioctl writes do not reach a running server's
// public read cache, which only learns of changes made through its own API.
const staleCacheNote = `Changes made here are not announced to a running folio server. Its public
read cache keeps serving the old order until cache.ttl (FOLIO_CACHE_TTL)
expires or the server restarts.`

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a record and close the gap it leaves",
		Long: `delete removes one record and moves every later record up by one, in a
single transaction.

` + staleCacheNote,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: id %q: %w", movable.ErrValidation, args[1], err)
			}
			_, engines, closeDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()
			engine, err := engines.Parse(args[0])
			if err != nil {
				return err
			}
			shifted, err := engine.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%d, %d records shifted up\n", engine.Collection(), id, shifted)
			return nil
		},
	}
}

func newCheckCmd(e *env) *cobra.Command {
	var repair bool
	cmd := &cobra.Command{
		Use:   "check [collection]",
		Short: "Report gaps and duplicates in sort_order, optionally repairing them",
		Long: `check verifies that each collection is numbered 1..N. With --repair a broken
collection is renumbered keeping its current order.

` + staleCacheNote,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engines, closeDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			targets := engines.All()
			if len(args) == 1 {
				engine, err := engines.Parse(args[0])
				if err != nil {
					return err
				}
				targets = []*movable.Engine{engine}
			}

			out := cmd.OutOrStdout()
			broken := 0
			for _, engine := range targets {
				entries, err := engine.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				report := movable.Inspect(entries)
				if report.Dense() {
					fmt.Fprintf(out, "%-13s ok (%d records)\n", engine.Collection(), report.Count)
					continue
				}
				broken++
				fmt.Fprintf(out, "%-13s NOT DENSE count=%d max=%d gaps=%v duplicates=%v\n",
					engine.Collection(), report.Count, report.Max, report.Gaps, report.Duplicates)
				if repair {
					changed, err := engine.Compact(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-13s repaired, %d records renumbered\n", engine.Collection(), changed)
				}
			}
			if broken > 0 && !repair {
				return fmt.Errorf("%w: %d collection(s) need repair, rerun with --repair", movable.ErrInvariantViolation, broken)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "compact collections that are not dense")
	return cmd
}

func collectionNames() []string {
	cols := movable.Collections()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}
