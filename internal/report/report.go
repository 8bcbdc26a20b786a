package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/solver-wandoos/internal/models"
	"github.com/napolitain/solver-wandoos/internal/solver/wandoos"
)

// Options controls what Render prints
type Options struct {
	// Verbose adds ticks-per-level and seconds-per-level lines
	Verbose bool
	// Quiet prints only the summary table
	Quiet bool
}

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("6")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 2)

// Banner returns the boxed title printed above a report
func Banner(title string) string {
	return bannerStyle.Render(title)
}

// FormatMultiplier formats an output multiplier like 1.23E+05
func FormatMultiplier(v float64) string {
	return fmt.Sprintf("%.2E", v)
}

// FormatAmount prints resource amounts with thousands separators, falling
// back to scientific notation once they stop being readable.
func FormatAmount(v float64) string {
	if v >= 1e15 {
		return fmt.Sprintf("%.2E", v)
	}
	return humanize.Commaf(math.Round(v*100) / 100)
}

// Render writes a per-machine report followed by a summary table
func Render(w io.Writer, results []wandoos.RunResult, opts Options) error {
	if !opts.Quiet {
		fmt.Fprintln(w, Banner("Wandoos Simulator"))
		fmt.Fprintln(w)
		for _, r := range results {
			renderRun(w, r, opts)
		}
	}
	return renderSummary(w, results)
}

func renderRun(w io.Writer, r wandoos.RunResult, opts Options) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen)
	warnColor := color.New(color.FgYellow)

	if r.Online {
		titleColor.Fprintf(w, "%s (%s)\n", r.Tier, r.Mode)
	} else {
		titleColor.Fprintf(w, "%s (%s, offline)\n", r.Tier, r.Mode)
	}
	fmt.Fprintln(w, strings.Repeat("=", 32))
	fmt.Fprintf(w, "%s energy\n", humanize.Comma(r.AllocatedEnergy))
	fmt.Fprintf(w, "%s magic\n", humanize.Comma(r.AllocatedMagic))
	fmt.Fprintln(w)

	for _, kind := range models.AllResourceKinds() {
		est := r.Gains.Estimate(kind)
		if est != nil {
			if est.Excess {
				warnColor.Fprintf(w, "You don't need that much %s! You're %.2f%% in excess!\n",
					kind, est.ExcessPercent)
			}
			if opts.Verbose {
				fmt.Fprintf(w, "Ticks per level: %d (%g seconds)\n", est.Ticks, est.SecondsPerLevel())
				if !est.Online {
					fmt.Fprintf(w, "Offline progress: %.2f%% of a level\n", est.Value()*100)
				}
			}
		}
		successColor.Fprintf(w, "\tGot %s %s levels\n", humanize.Comma(r.Gains.Levels(kind)), kind)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Multiplier: %s\n", FormatMultiplier(r.OutputMultiplier))
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintln(w)
}

func renderSummary(w io.Writer, results []wandoos.RunResult) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Tier", "Mode", "Capacity", "Energy Lvls", "Magic Lvls", "EL", "ML", "Output"}),
	)

	for _, r := range results {
		row := []string{
			string(r.Tier),
			string(r.Mode),
			FormatAmount(r.Capacity),
			humanize.Comma(r.Gains.Energy),
			humanize.Comma(r.Gains.Magic),
			humanize.Comma(r.EffectiveLevel),
			humanize.Comma(r.MagicLevel),
			FormatMultiplier(r.OutputMultiplier),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
