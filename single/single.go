// Package single 单段传输线的近端/远端交替反射图.
//
// 与两段引擎不同,这里没有事件队列: 第 k 次反射发生在 k·T,
// 奇数次在远端,偶数次在近端.
package single

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"bewley/coeff"
	"bewley/lattice"
	"bewley/report"
	"bewley/types"
)

// Params 单段线参数
type Params struct {
	Source    float64 // 阶跃源激励值
	Delay     float64 // 单程延时 T
	Z         float64 // 特性阻抗
	Rs        float64 // 源内阻
	Rt        float64 // 终端电阻,types.OpenCircuit 表示开路
	Tolerance float64 // 收敛容差
}

// NewParams 创建参数,容差取默认值
func NewParams(source, delay, z, rs, rt float64) Params {
	return Params{Source: source, Delay: delay, Z: z, Rs: rs, Rt: rt, Tolerance: types.SingleTolerance}
}

// lattice 等效为结点匹配的两段线,复用参数检查和系数计算
func (p Params) lattice() types.Params {
	return types.Params{
		Source:    p.Source,
		Delay0:    p.Delay,
		Delay1:    p.Delay,
		Z0:        p.Z,
		Z1:        p.Z,
		Rs:        p.Rs,
		Rt:        p.Rt,
		Tolerance: p.Tolerance,
	}
}

// Options 迭代配置
type Options struct {
	Iterations    int             // 固定反射次数,0 表示按收敛判断
	MaxIterations int             // 收敛判断时的最大反射次数
	Reporter      report.Reporter // 系数输出
}

// Option 配置函数
type Option func(*Options)

// WithIterations 固定反射次数
func WithIterations(n int) Option { return func(o *Options) { o.Iterations = n } }

// WithMaxIterations 最大反射次数
func WithMaxIterations(n int) Option { return func(o *Options) { o.MaxIterations = n } }

// WithReporter 系数输出
func WithReporter(r report.Reporter) Option { return func(o *Options) { o.Reporter = r } }

// Result 反射图结果,近端和远端共用时间列
type Result struct {
	Coefficients coeff.Coefficients // RhoA 为近端, RhoD 为远端
	Times        []float64          // 时间列
	Near         []float64          // 近端电平
	Far          []float64          // 远端电平
	Bounces      int                // 反射次数
	Converged    bool               // 是否在容差内收敛
}

// RhoNear 近端反射系数
func (r *Result) RhoNear() float64 { return r.Coefficients.RhoA }

// RhoFar 远端反射系数
func (r *Result) RhoFar() float64 { return r.Coefficients.RhoD }

// Traces 转换为阶梯波形 (近端, 远端)
func (r *Result) Traces() (near, far *lattice.Trace) {
	near = &lattice.Trace{Times: append([]float64(nil), r.Times...), Levels: append([]float64(nil), r.Near...)}
	far = &lattice.Trace{Times: append([]float64(nil), r.Times...), Levels: append([]float64(nil), r.Far...)}
	return near, far
}

// Run 计算单段反射图
func Run(p Params, opts ...Option) (*Result, error) {
	o := Options{MaxIterations: types.SingleMaxIteration, Reporter: report.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Iterations < 0 || o.MaxIterations <= 0 {
		return nil, fmt.Errorf("%w: iterations=%d max iterations=%d", types.ErrInvalidParameter, o.Iterations, o.MaxIterations)
	}
	c, err := coeff.New(p.lattice(), coeff.Voltage, coeff.ReferenceSteady)
	if err != nil {
		return nil, err
	}
	if o.Reporter != nil {
		o.Reporter.Report(c)
	}

	r := &Result{
		Coefficients: c,
		Times:        []float64{-p.Delay, 0, 0},
		Near:         []float64{0, 0, c.Initial},
		Far:          []float64{0, 0, 0},
	}
	forward, backward := c.Initial, 0.0
	// 稳态为0时放宽 tol·Vs
	slack := p.Tolerance * math.Abs(c.Steady)
	if c.Steady == 0 {
		slack += p.Tolerance * math.Abs(p.Source)
	}
	for {
		r.Bounces++
		now := float64(r.Bounces) * p.Delay
		r.Times = append(r.Times, now, now)
		if r.Bounces%2 == 1 {
			// 远端
			backward = c.RhoD * forward
			r.Near = hold(r.Near, 2)
			r.Far = step(r.Far, forward+backward)
		} else {
			// 近端
			forward = c.RhoA * backward
			r.Far = hold(r.Far, 2)
			r.Near = step(r.Near, backward+forward)
		}

		done := false
		if o.Iterations > 0 {
			done = r.Bounces == o.Iterations
		} else {
			r.Converged = settled(r.Near, c.Steady, slack) && settled(r.Far, c.Steady, slack)
			done = r.Converged || r.Bounces == o.MaxIterations
		}
		if done {
			r.Near = hold(r.Near, 1)
			r.Far = hold(r.Far, 1)
			r.Times = append(r.Times, now+p.Delay)
			return r, nil
		}
	}
}

func hold(levels []float64, n int) []float64 {
	last := levels[len(levels)-1]
	for i := 0; i < n; i++ {
		levels = append(levels, last)
	}
	return levels
}

func step(levels []float64, delta float64) []float64 {
	last := levels[len(levels)-1]
	return append(levels, last, last+delta)
}

// settled 最后电平是否在稳态附近
func settled(levels []float64, steady, slack float64) bool {
	return scalar.EqualWithinAbs(levels[len(levels)-1], steady, slack)
}
