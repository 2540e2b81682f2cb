package utils

import (
	"math"
	"testing"
)

func TestFloat(t *testing.T) {
	for _, c := range []struct {
		in   string
		want float64
	}{
		{"50", 50},
		{"1e-9", 1e-9},
		{"2.5n", 2.5e-9},
		{"10MEG", 10e6},
		{"3k", 3000},
		{"-4m", -4e-3},
	} {
		got, err := Float(c.in)
		if err != nil {
			t.Errorf("Float(%q) 错误: %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-12*math.Abs(c.want) {
			t.Errorf("Float(%q): 期望 %v, 实际 %v", c.in, c.want, got)
		}
	}
	for _, bad := range []string{"", "abc", "k", "1x"} {
		if _, err := Float(bad); err == nil {
			t.Errorf("Float(%q) 未报错", bad)
		}
	}
}

func TestNetList(t *testing.T) {
	n := NetList{"rt", "open", "12", "x"}
	if n.Name() != "RT" || len(n.Args()) != 3 {
		t.Fatalf("卡片解析错误 %v", n)
	}
	if r, err := n.Resistance(1); err != nil || !math.IsInf(r, 1) {
		t.Errorf("开路解析错误 %v %v", r, err)
	}
	if v, err := n.Int(2); err != nil || v != 12 {
		t.Errorf("整数解析错误 %v %v", v, err)
	}
	if _, err := n.Float64(3); err == nil {
		t.Error("非法数值未报错")
	}
	if _, err := n.Float64(9); err == nil {
		t.Error("越界未报错")
	}
	if f := FromFloats(1.5, math.Inf(1)); f[0] != "1.5" || f[1] != "open" {
		t.Errorf("格式化错误 %v", f)
	}
}
