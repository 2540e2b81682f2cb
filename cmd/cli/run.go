package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bewley/debug"
	"bewley/report"
	"bewley/types"
)

var (
	jsonOut   string
	htmlOut   string
	plotOut   string
	quiet     bool
	allowPart bool
	saveOut   string
)

var runCmd = &cobra.Command{
	Use:   "run <params-file>",
	Short: "运行两段线格形图仿真",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer s.close()
		// 保存应用命令行覆盖后的参数
		if saveOut != "" {
			if err := s.sim.Export(saveOut); err != nil {
				return err
			}
		}
		reporters := report.Multi{report.Log{Ctx: s.ctx}}
		if !quiet {
			reporters = append(reporters, report.NewConsole(cmd.OutOrStdout()))
		}
		s.sim.Reporter = reporters
		rec, err := s.sim.Record(s.ctx)
		if rec == nil {
			return err
		}
		// 未收敛时由调用者决定是否输出部分结果
		if err != nil && !(allowPart && errors.Is(err, types.ErrBudgetExceeded)) {
			return err
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Events:\n\thandled = %d, dropped = %d, horizon = %g\n", rec.Events, rec.Dropped, rec.Horizon)
		}
		return writeOutputs(rec)
	},
}

func init() {
	for _, c := range []*cobra.Command{runCmd, singleCmd} {
		c.Flags().StringVar(&jsonOut, "json", "", "JSON 输出文件,- 为标准输出")
		c.Flags().StringVar(&htmlOut, "html", "", "网页曲线输出文件")
		c.Flags().StringVar(&plotOut, "plot", "", "静态图输出文件(png/svg/pdf)")
		c.Flags().BoolVar(&quiet, "quiet", false, "不输出系数")
	}
	runCmd.Flags().BoolVar(&allowPart, "partial", false, "未收敛时仍输出部分波形")
	runCmd.Flags().StringVar(&saveOut, "save", "", "保存生效的参数卡片文件")
}

// writeOutputs 按参数写出记录
func writeOutputs(rec *debug.Record) error {
	if jsonOut != "" {
		if err := writeFile(jsonOut, rec.Render); err != nil {
			return err
		}
	}
	if htmlOut != "" {
		if err := writeFile(htmlOut, debug.NewCharts(rec).Render); err != nil {
			return err
		}
	}
	if plotOut != "" {
		if !debug.Format(plotOut) {
			return fmt.Errorf("unsupported plot format: %s", plotOut)
		}
		if err := debug.NewPlot(rec).Save(plotOut); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name string, render func(w io.Writer) error) error {
	if name == "-" {
		return render(os.Stdout)
	}
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return render(file)
}
