package debug

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bewley/lattice"
	"bewley/single"
	"bewley/types"
)

func run(t *testing.T) *Record {
	t.Helper()
	r, err := lattice.Run(context.Background(), types.NewParams(1, 1, 1, 50, 75, 25, types.OpenCircuit))
	if err != nil {
		t.Fatalf("仿真失败 %s", err)
	}
	return FromResult("test", r)
}

func TestRecordRender(t *testing.T) {
	rec := run(t)
	var buf bytes.Buffer
	if err := rec.Render(&buf); err != nil {
		t.Fatalf("输出失败 %s", err)
	}
	var back Record
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("JSON 无效 %s", err)
	}
	if len(back.Series) != 3 || back.Series[2].Name != "far" || back.Quantity != "voltage" {
		t.Errorf("记录内容错误 %+v", back)
	}
	if back.Coefficients["rho_d"] != 1 {
		t.Errorf("rho_d 错误 %v", back.Coefficients["rho_d"])
	}
}

func TestChartsRender(t *testing.T) {
	c := NewCharts(run(t))
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("渲染失败 %s", err)
	}
	if !strings.Contains(buf.String(), "echarts") {
		t.Error("页面缺少 echarts 脚本")
	}
	w := httptest.NewRecorder()
	c.Handler(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != 200 || w.Body.Len() == 0 {
		t.Errorf("HTTP 输出错误 %d", w.Code)
	}
}

func TestPlotSave(t *testing.T) {
	r, err := single.Run(single.NewParams(1, 1, 50, 10, 100))
	if err != nil {
		t.Fatalf("计算失败 %s", err)
	}
	p := NewPlot(FromSingle("single", r))
	name := filepath.Join(t.TempDir(), "single.png")
	if err := p.Save(name); err != nil {
		t.Fatalf("保存失败 %s", err)
	}
	if st, err := os.Stat(name); err != nil || st.Size() == 0 {
		t.Errorf("图片未生成 %v", err)
	}
	if !Format("a.SVG") || Format("a.txt") {
		t.Error("格式判断错误")
	}
}

// TestRecordRange 纵轴范围覆盖所有曲线且记录不共享结果数据
func TestRecordRange(t *testing.T) {
	r, err := lattice.Run(context.Background(), types.NewParams(1, 1, 1, 50, 50, 50, types.OpenCircuit))
	if err != nil {
		t.Fatalf("仿真失败 %s", err)
	}
	rec := FromResult("worked", r)
	if rec.Low != 0 || rec.High != 1 {
		t.Errorf("范围错误: %v %v", rec.Low, rec.High)
	}
	lo, hi := rec.Range()
	if lo >= 0 || hi <= 1 {
		t.Errorf("未留余量: %v %v", lo, hi)
	}
	rec.Series[0].Levels[0] = 42
	if r.Near.Levels[0] != 0 {
		t.Error("记录与结果共享底层数组")
	}

	flat := &Record{Low: 2, High: 2}
	if lo, hi := flat.Range(); lo >= 2 || hi <= 2 {
		t.Errorf("水平曲线范围错误: %v %v", lo, hi)
	}
}
