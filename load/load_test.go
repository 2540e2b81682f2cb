package load

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"bewley/coeff"
	"bewley/types"
)

const sample = `
# 匹配源,开路终端
TITLE worked example
.value zline 50
vs 1
T 1n 2n        # 延时
Z zline 75
RS zline
RT open
TOL 1e-4
MAXEVENTS 5000
quantity current
.option ignored
`

func TestParse(t *testing.T) {
	cfg, err := String(sample)
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	p := cfg.Params
	if p.Source != 1 || p.Delay0 != 1e-9 || p.Delay1 != 2e-9 || p.Z0 != 50 || p.Z1 != 75 || p.Rs != 50 || !math.IsInf(p.Rt, 1) {
		t.Errorf("参数错误 %+v", p)
	}
	if p.Tolerance != 1e-4 || cfg.MaxEvents != 5000 || cfg.Quantity != coeff.Current || cfg.Title != "worked example" {
		t.Errorf("配置错误 %+v", cfg)
	}
	if len(cfg.Options()) != 4 {
		t.Error("选项数量错误")
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"VS 1\nT 1 1\nZ 50 50\nRS 0\n",           // 缺少 RT
		"VS 1\nT 1\nZ 50 50\nRS 0\nRT 0\n",       // 参数不足
		"VS x\nT 1 1\nZ 50 50\nRS 0\nRT 0\n",     // 非法数值
		"VS 1\nT 1 1\nZ 50 50\nRS 0\nRT 0\nL 1\n", // 未知卡片
		".value a\n",
	} {
		if _, err := String(s); !errors.Is(err, types.ErrInvalidParameter) {
			t.Errorf("未报错: %q %v", s, err)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	cfg, err := String(sample)
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	cfg.MaxTime = 1e-6
	cfg.Reference = coeff.ReferenceSteady
	var buf bytes.Buffer
	if err := Export(&buf, cfg); err != nil {
		t.Fatalf("导出失败 %s", err)
	}
	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("重新解析失败 %s\n%s", err, buf.String())
	}
	if again.Params != cfg.Params || again.MaxTime != cfg.MaxTime || again.Reference != cfg.Reference || again.Title != cfg.Title {
		t.Errorf("导出不一致:\n%+v\n%+v", cfg, again)
	}
}
