// Cache commands: export, import, inspect and prune the pattern cache.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexnum/patterncache"
	"github.com/katalvlaran/hexnum/search"
)

type cacheStats struct {
	Backend string       `json:"backend" yaml:"backend"`
	Path    string       `json:"path" yaml:"path"`
	Entries int          `json:"entries" yaml:"entries"`
	Stale   int          `json:"stale" yaml:"stale"`
	Engine  search.Stats `json:"engine" yaml:"engine"`
}

type importSummary struct {
	Read     int `json:"read" yaml:"read"`
	Imported int `json:"imported" yaml:"imported"`
	Rejected int `json:"rejected" yaml:"rejected"`
}

func newCacheCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persistent pattern cache",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return st.app.requireCache()
		},
	}
	cmd.AddCommand(
		newCacheExportCmd(st),
		newCacheImportCmd(st),
		newCacheStatsCmd(st),
		newCachePruneCmd(st),
	)
	return cmd
}

func newCacheExportCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every entry in the two-column text format",
		Long: `Export writes "number,pattern" lines sorted by number descending, to
file or to stdout. With -o json or -o yaml the entries are encoded instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			entries, err := a.store.All(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := render(w, a.cfg.Output, entries, func(w io.Writer) error {
				return patterncache.WriteText(w, entries)
			}); err != nil {
				return err
			}
			a.logger.Info("cache exported", slog.Int("entries", len(entries)))
			return nil
		},
	}
}

func newCacheImportCmd(st *rootState) *cobra.Command {
	var noVerify bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load entries from a two-column text file",
		Long: `Import reads "number,pattern" lines and stores them. Each pattern is
replayed first and rejected unless it draws its number, unless --no-verify.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			entries, err := patterncache.ReadText(f)
			if err != nil {
				return err
			}

			sum := importSummary{Read: len(entries)}
			keep := entries[:0:0]
			for _, e := range entries {
				if !noVerify {
					if _, err := patterncache.Verify(e.Number, e.Pattern); err != nil {
						sum.Rejected++
						a.logger.Warn("rejected entry", slog.Int64("number", e.Number), slog.String("error", err.Error()))
						continue
					}
				}
				keep = append(keep, e)
			}
			sum.Imported, err = patterncache.Import(cmd.Context(), a.store, keep)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, sum, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "imported %d of %d entries, %d rejected\n", sum.Imported, sum.Read, sum.Rejected)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "store entries without replaying them")
	return cmd
}

func newCacheStatsCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count cache entries and how many no longer verify",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			entries, err := a.store.All(cmd.Context())
			if err != nil {
				return err
			}
			s := cacheStats{
				Backend: a.cfg.Cache.Backend,
				Path:    a.cachePath(),
				Entries: len(entries),
				Stale:   len(staleEntries(entries)),
				Engine:  a.engine.Stats(),
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, s, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s cache at %s: %s entries, %d stale\n",
					s.Backend, s.Path, grouped(float64(s.Entries)), s.Stale)
				return err
			})
		},
	}
}

func newCachePruneCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete entries that no longer verify",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			entries, err := a.store.All(cmd.Context())
			if err != nil {
				return err
			}
			stale := staleEntries(entries)
			for _, e := range stale {
				if err := a.store.Delete(cmd.Context(), e.Number); err != nil {
					return err
				}
				a.logger.Info("pruned entry", slog.Int64("number", e.Number), slog.String("pattern", e.Pattern))
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, stale, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "pruned %d of %d entries\n", len(stale), len(entries))
				return err
			})
		},
	}
}

func staleEntries(entries []patterncache.Entry) []patterncache.Entry {
	out := []patterncache.Entry{}
	for _, e := range entries {
		if _, err := patterncache.Verify(e.Number, e.Pattern); err != nil {
			out = append(out, e)
		}
	}
	return out
}
