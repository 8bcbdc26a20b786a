package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/solver-wandoos/internal/models"
	"github.com/napolitain/solver-wandoos/internal/solver/wandoos"
)

// RenderTiers prints the tier table together with the capacity each tier
// would have for the given machine template and multipliers.
func RenderTiers(w io.Writer, template models.MachineConfig, mults models.Multipliers) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Tier", "EL Coef", "ML Coef", "Exponent", "Normal Cap", "Evil Cap", "Capacity"}),
	)

	for _, t := range models.AllTiers() {
		c, _ := models.LookupTier(t)

		cfg := template
		cfg.Tier = t
		m, err := wandoos.NewMachine(cfg, mults)
		if err != nil {
			return err
		}
		capacity := "invalid"
		if v, err := m.Capacity(); err == nil {
			capacity = FormatAmount(v)
		}

		row := []string{
			string(t),
			fmt.Sprintf("%g", c.EffectiveLevelCoef),
			fmt.Sprintf("%g", c.MagicLevelCoef),
			fmt.Sprintf("%g", c.OutputExponent),
			fmt.Sprintf("%.0E", c.NormalCap),
			fmt.Sprintf("%.0E", c.EvilCap),
			capacity,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
