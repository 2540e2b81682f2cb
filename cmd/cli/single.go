package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bewley/debug"
	"bewley/report"
	"bewley/single"
	"bewley/types"
)

var (
	iterations    int
	maxIterations int
)

var singleCmd = &cobra.Command{
	Use:   "single <params-file>",
	Short: "以第0段参数计算单段线反射图",
	Long:  "忽略第1段,以 T0、Z0、RS、RT 计算单段线近端/远端交替反射.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer s.close()
		if !quiet {
			s.sim.Reporter = report.NewConsole(cmd.OutOrStdout())
		}
		opts := []single.Option{single.WithMaxIterations(maxIterations)}
		if iterations > 0 {
			opts = append(opts, single.WithIterations(iterations))
		}
		// 文件中的 TOL 用于两段引擎,这里只接受 --tol
		if tolerance == 0 {
			s.sim.Params.Tolerance = types.SingleTolerance
		}
		r, err := s.sim.Single(opts...)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Bounces:\n\tcount = %d, converged = %v\n", r.Bounces, r.Converged)
		}
		return writeOutputs(debug.FromSingle(s.sim.Title, r))
	},
}

func init() {
	singleCmd.Flags().IntVar(&iterations, "iterations", 0, "固定反射次数")
	singleCmd.Flags().IntVar(&maxIterations, "max-iterations", types.SingleMaxIteration, "最大反射次数")
}
