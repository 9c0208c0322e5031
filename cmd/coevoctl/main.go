package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coevo/internal/config"
	"coevo/internal/evo"
	"coevo/internal/genotype"
	"coevo/internal/logging"
	"coevo/internal/stats"
	"coevo/pkg/coevo"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coevoctl",
		Short: "Minimal-substrate coevolution runner",
		Long: `coevoctl evolves two populations of bit-string individuals against each
other and reports how their objective values move generation by generation.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newRunCmd(),
		newProfilesCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coevoctl version %s\n", version)
		},
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one coevolution experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := experimentFromFlags(cmd)
			if err != nil {
				return err
			}
			if err := exp.Validate(); err != nil {
				return err
			}

			logger := logging.NewLogger(exp.Logging.Level, cmd.ErrOrStderr())
			client, err := coevo.New(coevo.Options{Logger: logger})
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			summary, err := client.Run(ctx, coevo.RunRequest{Experiment: exp})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				record, err := client.GetRun(ctx, summary.RunID)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}

			every, _ := cmd.Flags().GetInt("every")
			if err := printGenerationTable(out, summary, every); err != nil {
				return err
			}
			printFinal(out, summary)

			elites, _ := cmd.Flags().GetBool("elites")
			if elites {
				printElites(out, evo.SideA, summary.Result.PopulationsA)
				printElites(out, evo.SideB, summary.Result.PopulationsB)
			}
			return nil
		},
	}

	cmd.Flags().String("profile", "", "Start from a built-in profile (see 'coevoctl profiles')")
	cmd.Flags().String("config", "", "Start from a YAML experiment file")
	cmd.Flags().Int64("seed", 0, "Fix the random seed")
	cmd.Flags().Bool("random-seed", false, "Draw a fresh seed and report it")
	cmd.Flags().Int("generations", 0, "Number of generations to evolve")
	cmd.Flags().Bool("hof", false, "Enable the hall of fame archive")
	cmd.Flags().Bool("json", false, "Print the full run record as JSON")
	cmd.Flags().Bool("elites", false, "Print the best individual's bits per generation")
	cmd.Flags().String("log-level", "", "Log level: info, debug or trace")
	cmd.Flags().Int("every", 50, "Print every Nth generation in the table")
	cmd.MarkFlagsMutuallyExclusive("profile", "config")
	cmd.MarkFlagsMutuallyExclusive("seed", "random-seed")

	return cmd
}

// experimentFromFlags layers defaults, profile or file, environment and
// explicit flags in that order.
func experimentFromFlags(cmd *cobra.Command) (*config.Experiment, error) {
	var (
		exp *config.Experiment
		err error
	)
	profileID, _ := cmd.Flags().GetString("profile")
	configPath, _ := cmd.Flags().GetString("config")
	switch {
	case profileID != "":
		exp, err = loadProfile(profileID)
	case configPath != "":
		exp, err = config.LoadFromFile(configPath)
	default:
		exp = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := exp.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		exp.Seed, _ = flags.GetInt64("seed")
		exp.FixedSeed = true
	}
	if random, _ := flags.GetBool("random-seed"); random {
		exp.FixedSeed = false
	}
	if flags.Changed("generations") {
		exp.Generations, _ = flags.GetInt("generations")
	}
	if hof, _ := flags.GetBool("hof"); hof {
		exp.HallOfFame.Enabled = true
	}
	if flags.Changed("log-level") {
		exp.Logging.Level, _ = flags.GetString("log-level")
	}
	return exp, nil
}

func printGenerationTable(out io.Writer, summary coevo.RunSummary, every int) error {
	if every <= 0 {
		every = 1
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GEN\tMEAN_A\tMIN_A\tMAX_A\tSUBJ_A\tMEAN_B\tMIN_B\tMAX_B\tSUBJ_B")
	last := len(summary.SummaryA) - 1
	for g := range summary.SummaryA {
		if g%every != 0 && g != last {
			continue
		}
		a, b := summary.SummaryA[g], summary.SummaryB[g]
		fmt.Fprintf(w, "%d\t%.2f\t%d\t%d\t%.3f\t%.2f\t%d\t%d\t%.3f\n",
			g,
			a.MeanObjective, a.MinObjective, a.MaxObjective, a.Subjective,
			b.MeanObjective, b.MinObjective, b.MaxObjective, b.Subjective,
		)
	}
	return w.Flush()
}

func printFinal(out io.Writer, summary coevo.RunSummary) {
	fmt.Fprintf(out, "run %s seed=%d generations=%d samples=%s\n",
		summary.RunID, summary.Seed, summary.Generations, humanize.Comma(int64(summary.Samples)))
	if len(summary.Result.HallOfFameA) > 0 {
		fmt.Fprintf(out, "hall of fame: a=%v b=%v\n", summary.Result.HallOfFameA.Values(), summary.Result.HallOfFameB.Values())
	}
}

func printElites(out io.Writer, side evo.Side, pops []genotype.Population) {
	fmt.Fprintf(out, "elites %s:\n", side)
	for g, row := range stats.EliteBitmap(pops) {
		var b strings.Builder
		for _, bit := range row {
			if bit == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		fmt.Fprintf(out, "%4d %s\n", g, b.String())
	}
}

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List built-in experiment profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			asYAML, _ := cmd.Flags().GetBool("yaml")
			if !asYAML {
				for _, p := range listProfiles() {
					fmt.Fprintf(out, "%s\t%s\n", p.ID, p.Description)
				}
				return nil
			}
			resolved := make(map[string]*config.Experiment, len(profiles))
			for _, id := range profileIDs() {
				exp, err := loadProfile(id)
				if err != nil {
					return err
				}
				resolved[id] = exp
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(resolved); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().Bool("yaml", false, "Print every profile as a YAML experiment")
	return cmd
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}
