package lattice

import "testing"

func TestTraceStep(t *testing.T) {
	tr := newTrace(2)
	tr.Step(1, 0.5)
	tr.Step(3, -0.25)
	tr.Hold(4)
	if tr.Len() != 7 {
		t.Fatalf("点数错误: %d", tr.Len())
	}
	if tr.Last() != 0.25 || tr.End() != 4 {
		t.Errorf("Last/End 错误: %v %v", tr.Last(), tr.End())
	}
	// 保持点重复上一电平
	if tr.Levels[2] != 0 || tr.Levels[3] != 0.5 || tr.Levels[4] != 0.5 {
		t.Errorf("阶梯错误: %v", tr.Levels)
	}
	for _, c := range []struct{ t, want float64 }{{-3, 0}, {-2, 0}, {0.5, 0}, {1, 0.5}, {2.9, 0.5}, {3, 0.25}, {10, 0.25}} {
		if got := tr.At(c.t); got != c.want {
			t.Errorf("At(%v): 期望 %v, 实际 %v", c.t, c.want, got)
		}
	}
	lo, hi := tr.Span()
	if lo != 0 || hi != 0.5 {
		t.Errorf("Span 错误: %v %v", lo, hi)
	}
}

func TestTraceClone(t *testing.T) {
	tr := newTrace(1)
	tr.Step(1, 1)
	c := tr.Clone()
	if !c.Equal(tr) {
		t.Fatal("拷贝不一致")
	}
	c.Step(2, 1)
	if c.Equal(tr) || tr.Len() != 4 {
		t.Error("拷贝共享了底层数据")
	}
}
