// Root command for the hexnum CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hexnum/search"
)

// rootState carries the resolved runtime from the root command to its
// subcommands.
type rootState struct {
	configDir string
	app       *app
}

func newRootCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexnum",
		Short: "Draw numbers as non-self-intersecting hex-grid patterns",
		Long: `hexnum encodes numbers as angle signatures over w, q, e, a and d.

A signature starts with aqaa (or dedd for negatives), then each angle turns
the pen and updates the running value: w +1, q +5, e +10, a ×2, d ÷2. No
edge of the hex grid may be drawn twice. Numbers too large or fractional
for a single pattern are split into components joined by distillations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}
			dir, err := resolveConfigDir(st.configDir)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(dir, cmd)
			if err != nil {
				return err
			}
			st.app, err = newApp(cfg, dir, cmd.ErrOrStderr())
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&st.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.hexnum)")
	pf.Int64("seed", 0, "engine seed; 0 selects the default seed")
	pf.Int("max-attempts", search.DefaultMaxAttempts, "attempt budget per number pattern")
	pf.Int("max-depth", search.DefaultMaxDepth, "maximum reduction rounds per number pattern")
	pf.Float64("tolerance", search.DefaultTolerance, "absolute tolerance when accepting a pattern")
	pf.StringP("output", "o", outputText, "output format: text, json or yaml")
	pf.String("cache-backend", "text", "pattern cache: text, sqlite, badger or none")
	pf.String("cache-path", "", "cache file or directory, relative to the config directory")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")

	cmd.AddCommand(
		newGenerateCmd(st),
		newVerifyCmd(st),
		newBatchCmd(st),
		newCacheCmd(st),
		newVersionCmd(),
	)
	return cmd
}
