package types

import (
	"fmt"
	"math"
)

// Params 两段级联传输线的物理参数,单次仿真内只读
type Params struct {
	Source    float64 // 阶跃源激励值
	Delay0    float64 // 第0段单程延时 T0
	Delay1    float64 // 第1段单程延时 T1
	Z0        float64 // 第0段特性阻抗
	Z1        float64 // 第1段特性阻抗
	Rs        float64 // 源内阻
	Rt        float64 // 终端电阻,OpenCircuit 表示开路
	Tolerance float64 // 波幅截断容差
}

// NewParams 创建参数,容差取默认值
func NewParams(source, t0, t1, z0, z1, rs, rt float64) Params {
	return Params{
		Source:    source,
		Delay0:    t0,
		Delay1:    t1,
		Z0:        z0,
		Z1:        z1,
		Rs:        rs,
		Rt:        rt,
		Tolerance: Tolerance,
	}
}

// Horizon 收尾时间延长量 max(T0,T1)
func (p Params) Horizon() float64 { return math.Max(p.Delay0, p.Delay1) }

// Validate 检查参数,任何非法值直接拒绝不做修正
func (p Params) Validate() error {
	if !finite(p.Source) {
		return fmt.Errorf("%w: source value %v is not finite", ErrInvalidParameter, p.Source)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"delay T0", p.Delay0},
		{"delay T1", p.Delay1},
		{"impedance Z0", p.Z0},
		{"impedance Z1", p.Z1},
	} {
		if !finite(v.value) || v.value <= 0 {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidParameter, v.name, v.value)
		}
	}
	if !finite(p.Rs) || p.Rs < 0 {
		return fmt.Errorf("%w: source resistance must be nonnegative and finite, got %v", ErrInvalidParameter, p.Rs)
	}
	if math.IsNaN(p.Rt) || p.Rt < 0 || math.IsInf(p.Rt, -1) {
		return fmt.Errorf("%w: termination resistance must be nonnegative or open, got %v", ErrInvalidParameter, p.Rt)
	}
	if !finite(p.Tolerance) || p.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidParameter, p.Tolerance)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
