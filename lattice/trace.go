package lattice

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Trace 阶梯波形记录,只追加
// 每次更新追加保持点和跳变点,时间非递减
type Trace struct {
	Times  []float64 // 时间列
	Levels []float64 // 电平列
}

// newTrace 以 (-t0,0),(0,0) 作为激励前基线
func newTrace(t0 float64) *Trace {
	return &Trace{
		Times:  append(make([]float64, 0, 16), -t0, 0),
		Levels: append(make([]float64, 0, 16), 0, 0),
	}
}

// Step 在时间 t 叠加 delta,追加保持点和跳变点
func (tr *Trace) Step(t, delta float64) {
	last := tr.Last()
	tr.Times = append(tr.Times, t, t)
	tr.Levels = append(tr.Levels, last, last+delta)
}

// Jump 在时间 t 追加一个跳变点
func (tr *Trace) Jump(t, level float64) {
	tr.Times = append(tr.Times, t)
	tr.Levels = append(tr.Levels, level)
}

// Hold 在时间 t 追加一个保持点
func (tr *Trace) Hold(t float64) { tr.Jump(t, tr.Last()) }

// Last 当前电平
func (tr *Trace) Last() float64 {
	if len(tr.Levels) == 0 {
		return 0
	}
	return tr.Levels[len(tr.Levels)-1]
}

// End 最后时间
func (tr *Trace) End() float64 {
	if len(tr.Times) == 0 {
		return 0
	}
	return tr.Times[len(tr.Times)-1]
}

// Len 点数
func (tr *Trace) Len() int { return len(tr.Times) }

// At 时间 t 处的电平(右连续)
func (tr *Trace) At(t float64) float64 {
	i := sort.Search(len(tr.Times), func(i int) bool { return tr.Times[i] > t })
	if i == 0 {
		return 0
	}
	return tr.Levels[i-1]
}

// Span 电平范围
func (tr *Trace) Span() (lo, hi float64) {
	if len(tr.Levels) == 0 {
		return 0, 0
	}
	return floats.Min(tr.Levels), floats.Max(tr.Levels)
}

// Equal 逐点完全相同
func (tr *Trace) Equal(o *Trace) bool {
	return floats.Equal(tr.Times, o.Times) && floats.Equal(tr.Levels, o.Levels)
}

// EqualApprox 逐点在容差内相同
func (tr *Trace) EqualApprox(o *Trace, tol float64) bool {
	return floats.EqualApprox(tr.Times, o.Times, tol) && floats.EqualApprox(tr.Levels, o.Levels, tol)
}

// Clone 深拷贝
func (tr *Trace) Clone() *Trace {
	return &Trace{
		Times:  append([]float64(nil), tr.Times...),
		Levels: append([]float64(nil), tr.Levels...),
	}
}
