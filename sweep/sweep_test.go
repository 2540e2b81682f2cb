package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"bewley/lattice"
	"bewley/types"
)

// TestSweepMatchesSerial 并行扫描与逐点串行结果一致
func TestSweepMatchesSerial(t *testing.T) {
	base := types.NewParams(1, 1, 2, 50, 75, 25, 100)
	values := Linspace(10, 200, 8)
	points, err := Run(context.Background(), base, AxisRt, values, 3)
	if err != nil {
		t.Fatalf("扫描失败 %s", err)
	}
	for i, pt := range points {
		if pt.Value != values[i] || pt.Err != nil {
			t.Fatalf("第%d点错误: %+v", i, pt)
		}
		r, err := lattice.Run(context.Background(), AxisRt.Apply(base, values[i]))
		if err != nil {
			t.Fatalf("串行仿真失败 %s", err)
		}
		for j, tr := range r.Traces() {
			if !tr.Equal(pt.Result.Traces()[j]) {
				t.Errorf("第%d点第%d个波形不一致", i, j)
			}
		}
		if math.Abs(pt.Result.Far.Last()-r.Coefficients.Steady) > 0.05 {
			t.Errorf("第%d点未收敛到稳态", i)
		}
	}
}

// TestSweepBudget 未收敛点单独记录
func TestSweepBudget(t *testing.T) {
	base := types.NewParams(1, 1, 1, 50, 50, 0, types.OpenCircuit)
	points, err := Run(context.Background(), base, AxisRs, []float64{0, 50}, 0, lattice.WithMaxEvents(200))
	if err != nil {
		t.Fatalf("扫描失败 %s", err)
	}
	if !errors.Is(points[0].Err, types.ErrBudgetExceeded) || points[0].Result == nil {
		t.Errorf("第0点应超出上限: %v", points[0].Err)
	}
	if points[1].Err != nil || !points[1].Result.Converged {
		t.Errorf("第1点应收敛: %v", points[1].Err)
	}
}

func TestSweepInvalid(t *testing.T) {
	base := types.NewParams(1, 1, 1, 50, 50, 10, 10)
	_, err := Run(context.Background(), base, AxisZ0, []float64{50, -1}, 1)
	if !errors.Is(err, types.ErrInvalidParameter) {
		t.Fatalf("期望 ErrInvalidParameter, 实际 %v", err)
	}
}

func TestParseAxis(t *testing.T) {
	if a, err := ParseAxis(" RT "); err != nil || a != AxisRt {
		t.Errorf("ParseAxis: %v %v", a, err)
	}
	if _, err := ParseAxis("t0"); err == nil {
		t.Error("未知参数未报错")
	}
	if v := Linspace(0, 1, 5); len(v) != 5 || v[2] != 0.5 || v[4] != 1 {
		t.Errorf("Linspace: %v", v)
	}
	if v := Linspace(3, 9, 1); len(v) != 1 || v[0] != 3 {
		t.Errorf("Linspace 单点: %v", v)
	}
	if v := Linspace(3, 9, 0); v != nil {
		t.Errorf("Linspace 空: %v", v)
	}
}
