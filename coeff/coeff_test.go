package coeff

import (
	"errors"
	"math"
	"testing"

	"bewley/types"
)

func TestCoefficientIdentities(t *testing.T) {
	for _, z := range [][2]float64{{50, 50}, {50, 75}, {75, 50}, {1, 1000}, {300, 0.5}} {
		for _, rt := range []float64{0, 10, 50, 1e6, types.OpenCircuit} {
			c, err := New(types.NewParams(1, 1, 2, z[0], z[1], 25, rt), Voltage, ReferenceDefault)
			if err != nil {
				t.Fatalf("计算系数失败 %s", err)
			}
			if c.TB != 1+c.RhoB || c.TC != 1+c.RhoC {
				t.Errorf("透射系数错误: %s", c)
			}
			if c.RhoC != -c.RhoB {
				t.Errorf("rho_c != -rho_b: %s", c)
			}
			for _, r := range c.Rho() {
				if r < -1 || r > 1 {
					t.Errorf("反射系数越界: %s", c)
				}
			}
		}
	}
}

func TestMatchedSegments(t *testing.T) {
	c, _ := New(types.NewParams(1, 1, 1, 50, 50, 0, 50), Voltage, ReferenceDefault)
	if c.RhoB != 0 || c.RhoC != 0 || c.TB != 1 || c.TC != 1 || c.RhoD != 0 {
		t.Errorf("匹配系数错误: %s", c)
	}
}

func TestOpenTermination(t *testing.T) {
	c, _ := New(types.NewParams(3.3, 1, 1, 50, 75, 10, types.OpenCircuit), Voltage, ReferenceDefault)
	if c.RhoD != 1 || c.Steady != 3.3 {
		t.Errorf("开路系数错误: %s", c)
	}
}

func TestShortTermination(t *testing.T) {
	c, _ := New(types.NewParams(3.3, 1, 1, 50, 75, 10, 0), Voltage, ReferenceDefault)
	if c.RhoD != -1 || c.Steady != 0 {
		t.Errorf("短路系数错误: %s", c)
	}
	if c.Cutoff(1e-3) != 1e-3 {
		t.Errorf("截断阈值错误: %v", c.Cutoff(1e-3))
	}
}

func TestReferenceMode(t *testing.T) {
	p := types.NewParams(2, 1, 1, 50, 50, 50, 150)
	v, _ := New(p, Voltage, ReferenceDefault)
	if v.Mode != ReferenceSteady || v.Reference != v.Steady || v.Steady != 1.5 {
		t.Errorf("电压参考错误: %s %s", v, v.Mode)
	}
	i, _ := New(p, Current, ReferenceDefault)
	if i.Mode != ReferenceInitial || i.Reference != 0.01 {
		t.Errorf("电流参考错误: %s %s", i, i.Mode)
	}
	o, _ := New(p, Current, ReferenceSteady)
	if o.Mode != ReferenceSteady {
		t.Errorf("参考模式未覆盖: %s", o.Mode)
	}
	if math.Abs(v.Cutoff(1e-3)-1.5e-3) > 1e-15 {
		t.Errorf("截断阈值错误: %v", v.Cutoff(1e-3))
	}
}

func TestLossless(t *testing.T) {
	c, _ := New(types.NewParams(1, 1, 1, 50, 50, 0, types.OpenCircuit), Voltage, ReferenceDefault)
	if !c.Lossless() {
		t.Error("全反射未识别")
	}
	c, _ = New(types.NewParams(1, 1, 1, 50, 50, 50, types.OpenCircuit), Voltage, ReferenceDefault)
	if c.Lossless() {
		t.Error("匹配源误判为全反射")
	}
}

// TestLargeResistance 极大的有限电阻不溢出
func TestLargeResistance(t *testing.T) {
	c, err := New(types.NewParams(10, 1, 1, 50, 75, 25, 1e308), Voltage, ReferenceDefault)
	if err != nil {
		t.Fatalf("计算系数失败 %s", err)
	}
	if math.Abs(c.Steady-10) > 1e-12 || math.IsInf(c.Cutoff(1e-3), 0) || c.RhoD != 1 {
		t.Errorf("大电阻系数错误: %s", c)
	}
	c, err = New(types.NewParams(10, 1, 1, 1e308, 75, 25, 100), Voltage, ReferenceDefault)
	if err != nil || math.Abs(c.Initial-10) > 1e-12 {
		t.Errorf("大阻抗初始值错误: %v %v", c.Initial, err)
	}
	// 容差与参考值相乘溢出
	p := types.NewParams(10, 1, 1, 50, 75, 25, 100)
	p.Tolerance = 1e308
	if _, err := New(p, Voltage, ReferenceDefault); !errors.Is(err, types.ErrInvalidParameter) {
		t.Errorf("截断阈值溢出未被拒绝: %v", err)
	}
}

func TestCurrentRejectsZeroDivider(t *testing.T) {
	_, err := New(types.NewParams(1, 1, 1, 50, 50, 0, 0), Current, ReferenceDefault)
	if !errors.Is(err, types.ErrInvalidParameter) {
		t.Fatalf("期望 ErrInvalidParameter, 实际 %v", err)
	}
	c, err := New(types.NewParams(1, 1, 1, 50, 50, 0, types.OpenCircuit), Current, ReferenceDefault)
	if err != nil || c.Initial != 0 {
		t.Errorf("开路电流错误: %v %v", c.Initial, err)
	}
}

func TestValidate(t *testing.T) {
	bad := []types.Params{
		types.NewParams(math.NaN(), 1, 1, 50, 50, 0, 0),
		types.NewParams(1, -1, 1, 50, 50, 0, 0),
		types.NewParams(1, 1, math.Inf(1), 50, 50, 0, 0),
		types.NewParams(1, 1, 1, 50, 0, 0, 0),
		types.NewParams(1, 1, 1, 50, 50, math.Inf(1), 0),
		types.NewParams(1, 1, 1, 50, 50, 0, math.NaN()),
	}
	for _, p := range bad {
		if _, err := New(p, Voltage, ReferenceDefault); !errors.Is(err, types.ErrInvalidParameter) {
			t.Errorf("参数 %+v 未被拒绝", p)
		}
	}
}

func TestParse(t *testing.T) {
	if q, err := ParseQuantity("Current"); err != nil || q != Current {
		t.Errorf("ParseQuantity: %v %v", q, err)
	}
	if _, err := ParseQuantity("power"); err == nil {
		t.Error("未知物理量未报错")
	}
	if m, err := ParseReference("initial"); err != nil || m != ReferenceInitial {
		t.Errorf("ParseReference: %v %v", m, err)
	}
}
