// Batch command: pre-generate a range of numbers into the cache.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexnum/patterncache"
)

type batchSummary struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	From      int64  `json:"from" yaml:"from"`
	To        int64  `json:"to" yaml:"to"`
	Generated int64  `json:"generated" yaml:"generated"`
	Skipped   int64  `json:"skipped" yaml:"skipped"`
	Repaired  int64  `json:"repaired" yaml:"repaired"`
	Failed    int64  `json:"failed" yaml:"failed"`
	Elapsed   string `json:"elapsed" yaml:"elapsed"`
}

func newBatchCmd(st *rootState) *cobra.Command {
	var (
		from, to int64
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Pre-generate a range of numbers into the pattern cache",
		Long: `Batch fills the pattern cache for every integer in [from, to], zero
excluded, using a pool of workers that share one engine. Entries that still
verify are skipped; stale ones are regenerated.

Example:
  hexnum batch --from 1 --to 10000 --workers 8
  hexnum batch --cache-backend sqlite --from -500 --to 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			if err := a.requireCache(); err != nil {
				return err
			}
			if from > to {
				return fmt.Errorf("--from %d is above --to %d", from, to)
			}
			if from < -patterncache.DefaultLimit || to > patterncache.DefaultLimit {
				return fmt.Errorf("range must lie within ±%d", patterncache.DefaultLimit)
			}
			if workers < 1 {
				return fmt.Errorf("--workers must be positive, got %d", workers)
			}
			sum, err := runBatch(cmd.Context(), a, from, to, workers)
			if rerr := render(cmd.OutOrStdout(), a.cfg.Output, sum, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "run %s: %d generated, %d skipped, %d repaired, %d failed in %s\n",
					sum.RunID, sum.Generated, sum.Skipped, sum.Repaired, sum.Failed, sum.Elapsed)
				return err
			}); rerr != nil {
				return rerr
			}
			if err != nil {
				return err
			}
			if sum.Failed > 0 {
				return fmt.Errorf("%d numbers failed", sum.Failed)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&from, "from", 1, "first number of the range")
	cmd.Flags().Int64Var(&to, "to", 1000, "last number of the range")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "concurrent workers")
	return cmd
}

// runBatch fans the range out over workers. It stops feeding work when ctx
// is done and returns ctx.Err() with the partial summary.
func runBatch(ctx context.Context, a *app, from, to int64, workers int) (batchSummary, error) {
	runID := uuid.NewString()
	if id, err := uuid.NewV7(); err == nil {
		runID = id.String()
	}
	log := a.logger.With(slog.String("run_id", runID))
	started := time.Now()
	repairsBefore := a.cache.Stats().Repairs

	var generated, skipped, failed atomic.Int64
	jobs := make(chan int64)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				if _, ok := a.cache.Lookup(ctx, n); ok {
					skipped.Add(1)
					continue
				}
				if _, err := a.cache.Generate(ctx, float64(n)); err != nil {
					failed.Add(1)
					log.Warn("generate failed", slog.Int64("number", n), slog.String("error", err.Error()))
					continue
				}
				generated.Add(1)
			}
		}()
	}

	var err error
feed:
	for n := from; n <= to; n++ {
		if n == 0 {
			continue
		}
		select {
		case jobs <- n:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	sum := batchSummary{
		RunID:     runID,
		From:      from,
		To:        to,
		Generated: generated.Load(),
		Skipped:   skipped.Load(),
		Repaired:  a.cache.Stats().Repairs - repairsBefore,
		Failed:    failed.Load(),
		Elapsed:   time.Since(started).Round(time.Millisecond).String(),
	}
	log.Info("batch finished",
		slog.Int64("generated", sum.Generated),
		slog.Int64("skipped", sum.Skipped),
		slog.Int64("failed", sum.Failed),
	)
	return sum, err
}
