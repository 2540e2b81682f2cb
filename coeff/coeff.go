// Package coeff 由物理参数计算反射系数、透射系数以及初始和稳态参考值.
package coeff

import (
	"fmt"
	"math"

	"bewley/types"
)

// Coefficients 一次仿真使用的常量
type Coefficients struct {
	Quantity Quantity // 物理量

	RhoA float64 // 近端反射(来自第0段)
	RhoB float64 // 结点反射(来自第0段)
	RhoC float64 // 结点反射(来自第1段)
	RhoD float64 // 远端反射(来自第1段)
	TB   float64 // 结点透射(0→1)
	TC   float64 // 结点透射(1→0)

	Initial   float64       // 初始注入值
	Steady    float64       // 稳态参考值
	Mode      ReferenceMode // 截断参考模式
	Reference float64       // 截断参考值
}

// New 校验参数并计算系数
func New(p types.Params, q Quantity, mode ReferenceMode) (Coefficients, error) {
	if q == nil {
		q = Voltage
	}
	if err := p.Validate(); err != nil {
		return Coefficients{}, err
	}
	if err := q.Check(p); err != nil {
		return Coefficients{}, err
	}
	c := Coefficients{
		Quantity: q,
		RhoA:     (p.Rs - p.Z0) / (p.Rs + p.Z0),
		RhoB:     (p.Z1 - p.Z0) / (p.Z0 + p.Z1),
		RhoC:     (p.Z0 - p.Z1) / (p.Z0 + p.Z1),
		RhoD:     Termination(p.Rt, p.Z1),
		Initial:  q.Initial(p),
		Steady:   q.Steady(p),
	}
	c.TB = 1 + c.RhoB
	c.TC = 1 + c.RhoC
	if mode == ReferenceDefault {
		mode = q.Reference()
	}
	c.Mode = mode
	switch mode {
	case ReferenceInitial:
		c.Reference = c.Initial
	default:
		c.Reference = c.Steady
	}
	for _, v := range [...]struct {
		name  string
		value float64
	}{
		{"rho_a", c.RhoA}, {"rho_b", c.RhoB}, {"rho_d", c.RhoD},
		{"initial", c.Initial}, {"steady", c.Steady}, {"cutoff", c.Cutoff(p.Tolerance)},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return Coefficients{}, fmt.Errorf("%w: %s is not finite", types.ErrInvalidParameter, v.name)
		}
	}
	return c, nil
}

// Termination 终端反射系数,开路为1,短路为-1
func Termination(rt, z float64) float64 {
	switch {
	case types.IsOpen(rt):
		return 1
	case types.IsShort(rt):
		return -1
	}
	return (rt - z) / (rt + z)
}

// Cutoff 波幅截断阈值 max(tol, tol·reference)
func (c Coefficients) Cutoff(tolerance float64) float64 {
	return math.Max(tolerance, tolerance*c.Reference)
}

// Lossless 两端均全反射时波幅不衰减
func (c Coefficients) Lossless() bool {
	return math.Abs(c.RhoA) == 1 && math.Abs(c.RhoD) == 1
}

// Rho 反射系数元组 (a, b, c, d)
func (c Coefficients) Rho() [4]float64 { return [4]float64{c.RhoA, c.RhoB, c.RhoC, c.RhoD} }

// String 格式化系数
func (c Coefficients) String() string {
	return fmt.Sprintf("rho_abcd=(%g, %g, %g, %g) t_bc=(%g, %g) initial=%g steady=%g",
		c.RhoA, c.RhoB, c.RhoC, c.RhoD, c.TB, c.TC, c.Initial, c.Steady)
}
