// Verify command: replay signatures and report what they draw.
package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

type verifyResult struct {
	Signature string   `json:"signature" yaml:"signature"`
	Valid     bool     `json:"valid" yaml:"valid"`
	Value     *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Strokes   int      `json:"strokes" yaml:"strokes"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newVerifyCmd(st *rootState) *cobra.Command {
	var (
		raw   bool
		start string
	)
	cmd := &cobra.Command{
		Use:   "verify <signature>...",
		Short: "Check signatures for retraced edges and report their value",
		Long: `Verify replays each number signature (prefix included) from scratch,
rejecting retraced edges, unknown angles and doubling streaks, and prints the
value it draws.

With --raw the signature is any angle string, such as a distillation, and
only edge uniqueness is checked, starting from --start.

Example:
  hexnum verify aqaaeew deddqww
  hexnum verify --raw --start NORTH_EAST waaw`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := hexgrid.ParseDirection(start)
			if err != nil {
				return err
			}
			results := make([]verifyResult, 0, len(args))
			bad := 0
			for _, sig := range args {
				r := verifySignature(sig, raw, dir)
				if !r.Valid {
					bad++
				}
				results = append(results, r)
			}
			err = render(cmd.OutOrStdout(), st.app.cfg.Output, results, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, r := range results {
					switch {
					case !r.Valid:
						fmt.Fprintf(tw, "%s\tinvalid\t%s\n", r.Signature, r.Error)
					case r.Value != nil:
						fmt.Fprintf(tw, "%s\tok\t%s\n", r.Signature, grouped(*r.Value))
					default:
						fmt.Fprintf(tw, "%s\tok\t%d strokes\n", r.Signature, r.Strokes)
					}
				}
				return tw.Flush()
			})
			if err != nil {
				return err
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d signatures invalid", bad, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "check edge uniqueness only, without a number prefix")
	cmd.Flags().StringVar(&start, "start", walk.StartHeading.String(), "initial heading for --raw")
	return cmd
}

func verifySignature(sig string, raw bool, start hexgrid.Direction) verifyResult {
	r := verifyResult{Signature: sig, Strokes: len(sig) + 1}
	if raw {
		if err := hexgrid.Validate(start, sig); err != nil {
			r.Error = err.Error()
			return r
		}
		r.Valid = true
		return r
	}
	p, err := walk.Replay(sig)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	v := p.Value()
	r.Valid, r.Value, r.Strokes = true, &v, p.EdgeCount()
	return r
}
