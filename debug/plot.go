package debug

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// palette 曲线颜色
var palette = []color.RGBA{
	{R: 0xc7, G: 0x19, B: 0x79, A: 0xff},
	{R: 0x19, G: 0x87, B: 0xc7, A: 0xff},
	{R: 0x2f, G: 0x9e, B: 0x44, A: 0xff},
	{R: 0xe0, G: 0x8e, B: 0x0b, A: 0xff},
}

// Plot 静态图
type Plot struct {
	*Record
	Width  vg.Length // 宽度
	Height vg.Length // 高度
}

// NewPlot 创建默认尺寸静态图
func NewPlot(rec *Record) *Plot {
	return &Plot{Record: rec, Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

// Build 构建图表
func (p *Plot) Build() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "t"
	pl.Y.Label.Text = fmt.Sprintf("%s [%s]", p.Quantity, p.Unit)
	pl.Add(plotter.NewGrid())
	for i, s := range p.Series {
		xys := make(plotter.XYs, len(s.Times))
		for j := range s.Times {
			xys[j].X, xys[j].Y = s.Times[j], s.Levels[j]
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("曲线 %s: %w", s.Name, err)
		}
		l.Color = palette[i%len(palette)]
		l.Width = vg.Points(1.5)
		pl.Add(l)
		pl.Legend.Add(s.Name, l)
	}
	pl.Y.Min, pl.Y.Max = p.Range()
	pl.Legend.Top = true
	return pl, nil
}

// Save 按扩展名保存为 png/svg/pdf 等格式
func (p *Plot) Save(filename string) error {
	pl, err := p.Build()
	if err != nil {
		return err
	}
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	return pl.Save(p.Width, p.Height, filename)
}

// Format 支持的格式
func Format(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
		return true
	}
	return false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
