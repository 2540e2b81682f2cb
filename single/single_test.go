package single

import (
	"errors"
	"testing"

	"bewley/types"
)

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestMatchedSourceOpen 匹配源开路终端两次反射后收敛
func TestMatchedSourceOpen(t *testing.T) {
	r, err := Run(NewParams(1, 1, 50, 50, types.OpenCircuit))
	if err != nil {
		t.Fatalf("计算失败 %s", err)
	}
	if r.RhoNear() != 0 || r.RhoFar() != 1 {
		t.Fatalf("反射系数错误 %v %v", r.RhoNear(), r.RhoFar())
	}
	if !r.Converged || r.Bounces != 2 {
		t.Fatalf("收敛状态错误: converged=%v bounces=%d", r.Converged, r.Bounces)
	}
	if want := []float64{-1, 0, 0, 1, 1, 2, 2, 3}; !equal(r.Times, want) {
		t.Errorf("时间列: 期望 %v, 实际 %v", want, r.Times)
	}
	if want := []float64{0, 0, 0.5, 0.5, 0.5, 0.5, 1, 1}; !equal(r.Near, want) {
		t.Errorf("近端: 期望 %v, 实际 %v", want, r.Near)
	}
	if want := []float64{0, 0, 0, 0, 1, 1, 1, 1}; !equal(r.Far, want) {
		t.Errorf("远端: 期望 %v, 实际 %v", want, r.Far)
	}
}

func TestFixedIterations(t *testing.T) {
	r, err := Run(NewParams(1, 2, 50, 50, types.OpenCircuit), WithIterations(5))
	if err != nil {
		t.Fatalf("计算失败 %s", err)
	}
	if r.Bounces != 5 || len(r.Times) != 3+2*5+1 || r.Times[len(r.Times)-1] != 12 {
		t.Errorf("固定次数错误: bounces=%d times=%v", r.Bounces, r.Times)
	}
	if len(r.Near) != len(r.Times) || len(r.Far) != len(r.Times) {
		t.Error("列长度不一致")
	}
}

// TestLosslessStopsAtMax 全反射时在最大次数停止
func TestLosslessStopsAtMax(t *testing.T) {
	r, err := Run(NewParams(1, 1, 50, 0, types.OpenCircuit), WithMaxIterations(9))
	if err != nil {
		t.Fatalf("计算失败 %s", err)
	}
	if r.Converged || r.Bounces != 9 {
		t.Errorf("期望在第9次停止, 实际 converged=%v bounces=%d", r.Converged, r.Bounces)
	}
}

// TestShortSlack 稳态为0时使用源值放宽
func TestShortSlack(t *testing.T) {
	r, err := Run(NewParams(1, 1, 50, 50, 0))
	if err != nil {
		t.Fatalf("计算失败 %s", err)
	}
	if !r.Converged || r.Far[len(r.Far)-1] != 0 || r.Near[len(r.Near)-1] != 0 {
		t.Errorf("短路未收敛到0: %v %v", r.Near, r.Far)
	}
	near, far := r.Traces()
	if near.Len() != len(r.Times) || far.Last() != 0 {
		t.Error("波形转换错误")
	}
}

func TestInvalid(t *testing.T) {
	if _, err := Run(NewParams(1, 0, 50, 50, 0)); !errors.Is(err, types.ErrInvalidParameter) {
		t.Errorf("延时为0未被拒绝: %v", err)
	}
	if _, err := Run(NewParams(1, 1, 50, 50, 0), WithMaxIterations(0)); !errors.Is(err, types.ErrInvalidParameter) {
		t.Errorf("最大次数为0未被拒绝: %v", err)
	}
}
