// Package report 系数与参考值的旁路输出,仿真核心本身不做任何输出.
package report

import (
	"context"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats/scalar"

	"bewley/coeff"
	"bewley/internal/logging"
)

// Reporter 接收一次仿真计算出的系数
type Reporter interface {
	Report(c coeff.Coefficients)
}

// Func 函数形式的 Reporter
type Func func(c coeff.Coefficients)

// Report 调用函数
func (f Func) Report(c coeff.Coefficients) { f(c) }

// Nop 不输出
type Nop struct{}

// Report 空实现
func (Nop) Report(coeff.Coefficients) {}

// Console 控制台格式输出
type Console struct {
	W            io.Writer // 输出目标
	Coefficients bool      // 输出反射系数
	Steady       bool      // 输出稳态值
	Initial      bool      // 输出初始值
}

// NewConsole 创建全部输出的控制台报告
func NewConsole(w io.Writer) *Console {
	return &Console{W: w, Coefficients: true, Steady: true, Initial: true}
}

// Report 按原有格式输出,数值保留4位小数
func (r *Console) Report(c coeff.Coefficients) {
	name, unit := "value", ""
	if c.Quantity != nil {
		name, unit = c.Quantity.Name(), c.Quantity.Unit()
	}
	if r.Coefficients {
		fmt.Fprintf(r.W, "Reflection coefficients:\n\trho_abcd = (%v, %v, %v, %v).\n", c.RhoA, c.RhoB, c.RhoC, c.RhoD)
		fmt.Fprintf(r.W, "Transmission coefficients:\n\tt_bc = (%v, %v).\n", c.TB, c.TC)
	}
	if r.Steady {
		fmt.Fprintf(r.W, "Steady state %s:\n\tsteady = %v [%s]\n", name, scalar.Round(c.Steady, 4), unit)
	}
	if r.Initial {
		fmt.Fprintf(r.W, "Initial %s:\n\tinitial = %v [%s]\n", name, scalar.Round(c.Initial, 4), unit)
	}
}

// Log 结构化日志输出
type Log struct {
	Ctx    context.Context
	Logger logging.Logger
}

// Report 以 info 级别记录系数
func (r Log) Report(c coeff.Coefficients) {
	ctx := r.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	l := r.Logger
	if l == nil {
		l = logging.LoggerFromContext(ctx)
	}
	quantity := "unknown"
	if c.Quantity != nil {
		quantity = c.Quantity.Name()
	}
	l.Info(ctx, "lattice coefficients",
		logging.String("quantity", quantity),
		logging.Float("rho_a", c.RhoA),
		logging.Float("rho_b", c.RhoB),
		logging.Float("rho_c", c.RhoC),
		logging.Float("rho_d", c.RhoD),
		logging.Float("t_b", c.TB),
		logging.Float("t_c", c.TC),
		logging.Float("initial", c.Initial),
		logging.Float("steady", c.Steady),
		logging.String("reference", c.Mode.String()),
	)
}

// Multi 依次调用多个 Reporter
type Multi []Reporter

// Report 分发
func (m Multi) Report(c coeff.Coefficients) {
	for _, r := range m {
		if r != nil {
			r.Report(c)
		}
	}
}
