// Package sweep 对单个参数做多点独立仿真.
//
// 每个点是一次独立的 lattice.Run,不共享可变状态,可以并行执行.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"bewley/lattice"
	"bewley/types"
)

// Axis 扫描的参数
type Axis string

// 可扫描参数
const (
	AxisRs     Axis = "rs"
	AxisRt     Axis = "rt"
	AxisZ0     Axis = "z0"
	AxisZ1     Axis = "z1"
	AxisSource Axis = "vs"
)

// ParseAxis 解析参数名
func ParseAxis(name string) (Axis, error) {
	a := Axis(strings.ToLower(strings.TrimSpace(name)))
	switch a {
	case AxisRs, AxisRt, AxisZ0, AxisZ1, AxisSource:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown sweep axis %q", types.ErrInvalidParameter, name)
}

// Apply 设置参数值
func (a Axis) Apply(p types.Params, v float64) types.Params {
	switch a {
	case AxisRs:
		p.Rs = v
	case AxisRt:
		p.Rt = v
	case AxisZ0:
		p.Z0 = v
	case AxisZ1:
		p.Z1 = v
	case AxisSource:
		p.Source = v
	}
	return p
}

// Point 单点结果
type Point struct {
	Value  float64         // 参数值
	Result *lattice.Result // 仿真结果,参数非法时为 nil
	Err    error           // 未收敛等错误
}

// Run 并行执行扫描,结果顺序与 values 一致
// 参数非法或上下文取消会终止整个扫描; 未收敛只记录在对应点上
func Run(ctx context.Context, base types.Params, axis Axis, values []float64, limit int, opts ...lattice.Option) ([]Point, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	points := make([]Point, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, v := range values {
		i, v := i, v
		points[i].Value = v
		g.Go(func() error {
			r, err := lattice.Run(ctx, axis.Apply(base, v), opts...)
			points[i].Result, points[i].Err = r, err
			if err != nil && !errors.Is(err, types.ErrBudgetExceeded) {
				return fmt.Errorf("%s=%v: %w", axis, v, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return points, err
	}
	return points, nil
}

// Linspace 等间距取值
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}
