package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/napolitain/solver-wandoos/internal/models"
	"github.com/napolitain/solver-wandoos/internal/report"
	"github.com/napolitain/solver-wandoos/internal/solver/wandoos"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// tierList is a repeatable --tier flag. The first Set replaces the default.
type tierList struct {
	tiers   []models.Tier
	changed bool
}

var _ pflag.Value = (*tierList)(nil)

func (l *tierList) String() string {
	names := make([]string, len(l.tiers))
	for i, t := range l.tiers {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

func (l *tierList) Set(s string) error {
	if !l.changed {
		l.tiers = nil
		l.changed = true
	}
	for _, part := range strings.Split(s, ",") {
		t, err := models.ParseTier(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		l.tiers = append(l.tiers, t)
	}
	return nil
}

func (l *tierList) Type() string { return "tiers" }

type options struct {
	cfg   models.Config
	tiers tierList
	quiet bool
	trace bool
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: models.DefaultConfig()}
	opts.tiers.tiers = opts.cfg.Tiers

	rootCmd := &cobra.Command{
		Use:   "wandoos",
		Short: "NGU Idle Wandoos calculator",
		Long: `Simulates running Wandoos machines for a fixed time and reports
the levels gained and the resulting output multiplier.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}
	bindMachineFlags(rootCmd.PersistentFlags(), opts)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the configured machines (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}

	tiersCmd := &cobra.Command{
		Use:   "tiers",
		Short: "Show the tier table and the resulting capacities",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.cfg.Multipliers.Validate(); err != nil {
				return err
			}
			return report.RenderTiers(cmd.OutOrStdout(), opts.cfg.Machine, opts.cfg.Multipliers)
		},
	}

	rootCmd.AddCommand(runCmd, tiersCmd)
	return rootCmd
}

func bindMachineFlags(fs *pflag.FlagSet, opts *options) {
	m := &opts.cfg.Machine
	mults := &opts.cfg.Multipliers
	run := &opts.cfg.Run

	fs.VarP(&opts.tiers, "tier", "t", "Machine tier(s): W98, WMEH, WXL (repeatable)")
	fs.Var(&m.Mode, "mode", "Difficulty mode: normal or evil")
	fs.Int64Var(&m.EffectiveLevel, "el", m.EffectiveLevel, "Initial effective (energy) level")
	fs.Int64Var(&m.MagicLevel, "ml", m.MagicLevel, "Initial magic level")
	fs.Float64Var(&m.Bootup, "bootup", m.Bootup, "Bootup multiplier")
	fs.Int64Var(&m.AllocatedEnergy, "energy", m.AllocatedEnergy, "Allocated energy")
	fs.Int64Var(&m.AllocatedMagic, "magic", m.AllocatedMagic, "Allocated magic")
	fs.BoolVar(&m.Online, "online", m.Online, "Online (tick based) instead of offline progress")

	fs.DurationVar(&run.RunningTime, "time", run.RunningTime, "Running time")
	fs.BoolVarP(&run.Verbose, "verbose", "v", run.Verbose, "Print ticks and seconds per level")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "Only print the summary table")
	fs.BoolVar(&opts.trace, "trace", false, "Log the simulator trace to stderr")

	fs.Float64Var(&mults.Equipment, "eq", mults.Equipment, "Equipment Wandoos bonus")
	fs.Float64Var(&mults.OSLevel, "os-level", mults.OSLevel, "OS level modifier")
	fs.Float64Var(&mults.AdventureTraining, "adv-training", mults.AdventureTraining, "Adventure training bonus")
	fs.Float64Var(&mults.NGU, "ngu", mults.NGU, "NGU bonus")
	fs.Float64Var(&mults.Challenge100, "chal100", mults.Challenge100, "100 level challenge bonus")
	fs.Float64Var(&mults.TotalOverride, "total-mult", mults.TotalOverride,
		"Total multiplier; when non-zero it replaces the product of the other multipliers")
}

// newLogger only reports warnings unless trace is set; the report owns
// everything the user normally sees.
func newLogger(w io.Writer, trace bool) *log.Logger {
	level := log.WarnLevel
	if trace {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "wandoos",
		Level:  level,
	})
}

func runSimulation(cmd *cobra.Command, opts *options) error {
	cfg := opts.cfg
	cfg.Tiers = opts.tiers.tiers
	if err := cfg.Validate(); err != nil {
		return err
	}

	results, err := wandoos.Simulate(cfg.MachineConfigs(), cfg.Multipliers, wandoos.SimulateOptions{
		Seconds: cfg.Run.RunningTime.Seconds(),
		Energy:  true,
		Magic:   true,
		Logger:  newLogger(cmd.ErrOrStderr(), opts.trace),
	})
	if err != nil {
		return err
	}

	return report.Render(cmd.OutOrStdout(), results, report.Options{
		Verbose: cfg.Run.Verbose,
		Quiet:   opts.quiet,
	})
}
