// Generate command: decompose numbers into pattern components.
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexnum/numeral"
)

// generateResult is the decomposition of one target.
type generateResult struct {
	Target     float64             `json:"target" yaml:"target"`
	Value      float64             `json:"value" yaml:"value"`
	Components []numeral.Component `json:"components" yaml:"components"`
}

// directResult is the single number pattern of one integer target.
type directResult struct {
	Target    float64 `json:"target" yaml:"target"`
	Signature string  `json:"signature" yaml:"signature"`
	Length    int     `json:"length" yaml:"length"`
}

func newGenerateCmd(st *rootState) *cobra.Command {
	var (
		timeout time.Duration
		direct  bool
	)
	cmd := &cobra.Command{
		Use:   "generate <number>...",
		Short: "Decompose numbers into pattern components",
		Long: `Generate prints, for each number, the components that draw it: number
patterns plus the distillations that combine them on a stack.

With --direct, each target must be an integer and a single number pattern is
printed instead, however long.

Negative numbers follow "--" so they are not read as flags.

Example:
  hexnum generate 42 1234567 3.25
  hexnum generate -o json -- -7
  hexnum generate --direct 5000000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parseTargets(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			if direct {
				return runDirect(ctx, cmd.OutOrStdout(), st.app, targets)
			}
			return runGenerate(ctx, cmd.OutOrStdout(), st.app, targets)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 = no limit)")
	cmd.Flags().BoolVar(&direct, "direct", false, "print one number pattern per integer target")
	return cmd
}

func parseTargets(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", arg, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func runGenerate(ctx context.Context, w io.Writer, a *app, targets []float64) error {
	results := make([]generateResult, 0, len(targets))
	for _, t := range targets {
		comps, err := a.formatter.Components(ctx, t)
		if err != nil {
			return err
		}
		v, err := numeral.Evaluate(comps)
		if err != nil {
			return fmt.Errorf("evaluate %v: %w", t, err)
		}
		if math.Abs(v-t) > a.cfg.Tolerance {
			return fmt.Errorf("components of %v evaluate to %v", t, v)
		}
		results = append(results, generateResult{Target: t, Value: v, Components: comps})
	}
	return render(w, a.cfg.Output, results, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t(%d components)\n", grouped(r.Target), len(r.Components))
			for _, c := range r.Components {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", c.Kind, c.Label, c.StartDir, c.Pattern)
			}
		}
		return tw.Flush()
	})
}

func runDirect(ctx context.Context, w io.Writer, a *app, targets []float64) error {
	results := make([]directResult, 0, len(targets))
	for _, t := range targets {
		p, err := a.source.Generate(ctx, t)
		if err != nil {
			return err
		}
		results = append(results, directResult{Target: t, Signature: p.Signature(), Length: p.Len()})
	}
	return render(w, a.cfg.Output, results, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", grouped(r.Target), r.Signature); err != nil {
				return err
			}
		}
		return nil
	})
}
