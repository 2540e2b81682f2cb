package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bewley/sweep"
	"bewley/types"
)

var (
	axisName string
	from     float64
	to       float64
	points   int
	workers  int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <params-file>",
	Short: "对单个参数做并行扫描",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		axis, err := sweep.ParseAxis(axisName)
		if err != nil {
			return err
		}
		s, err := newSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer s.close()
		results, err := s.sim.Sweep(s.ctx, axis, sweep.Linspace(from, to, points), workers)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s\trho_d\tsteady\tfar\tevents\thorizon\tstatus\n", axis)
		for _, pt := range results {
			r := pt.Result
			status := "converged"
			if errors.Is(pt.Err, types.ErrBudgetExceeded) {
				status = "budget exceeded"
			}
			fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%.4f\t%d\t%g\t%s\n",
				pt.Value, r.Coefficients.RhoD, r.Coefficients.Steady, r.Far.Last(), r.Events, r.Horizon, status)
		}
		return w.Flush()
	},
}

func init() {
	sweepCmd.Flags().StringVar(&axisName, "axis", "rt", "扫描参数 rs|rt|z0|z1|vs")
	sweepCmd.Flags().Float64Var(&from, "from", 10, "起始值")
	sweepCmd.Flags().Float64Var(&to, "to", 100, "结束值")
	sweepCmd.Flags().IntVar(&points, "points", 10, "点数")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "并行数,0 为 GOMAXPROCS")
}
