// Package debug 记录仿真结果并输出为 JSON、网页曲线或静态图片.
package debug

import (
	"encoding/json"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"

	"bewley/lattice"
	"bewley/single"
)

// Series 一条阶梯曲线
type Series struct {
	Name   string    `json:"name"`
	Times  []float64 `json:"times"`
	Levels []float64 `json:"levels"`
}

// Record 记录历史状态
type Record struct {
	Title        string             `json:"title,omitempty"`
	Quantity     string             `json:"quantity"`
	Unit         string             `json:"unit"`
	Coefficients map[string]float64 `json:"coefficients"`
	Series       []Series           `json:"series"`
	Low          float64            `json:"low"`  // 所有曲线的最低电平
	High         float64            `json:"high"` // 所有曲线的最高电平
	Events       int                `json:"events"`
	Dropped      int                `json:"dropped"`
	Horizon      float64            `json:"horizon"`
	Converged    bool               `json:"converged"`
}

// FromResult 记录两段线仿真结果
func FromResult(title string, r *lattice.Result) *Record {
	c := r.Coefficients
	rec := &Record{
		Title: title,
		Coefficients: map[string]float64{
			"rho_a":   c.RhoA,
			"rho_b":   c.RhoB,
			"rho_c":   c.RhoC,
			"rho_d":   c.RhoD,
			"t_b":     c.TB,
			"t_c":     c.TC,
			"initial": c.Initial,
			"steady":  c.Steady,
		},
		Events:    r.Events,
		Dropped:   r.Dropped,
		Horizon:   r.Horizon,
		Converged: r.Converged,
	}
	if c.Quantity != nil {
		rec.Quantity, rec.Unit = c.Quantity.Name(), c.Quantity.Unit()
	}
	// 拷贝一份,记录不与结果共享底层数组
	for i, name := range []string{"near", "central", "far"} {
		tr := r.Traces()[i].Clone()
		lo, hi := tr.Span()
		if i == 0 || lo < rec.Low {
			rec.Low = lo
		}
		if i == 0 || hi > rec.High {
			rec.High = hi
		}
		rec.Series = append(rec.Series, Series{Name: name, Times: tr.Times, Levels: tr.Levels})
	}
	return rec
}

// FromSingle 记录单段线结果
func FromSingle(title string, r *single.Result) *Record {
	c := r.Coefficients
	rec := &Record{
		Title:    title,
		Quantity: "voltage",
		Unit:     "V",
		Coefficients: map[string]float64{
			"rho_near": c.RhoA,
			"rho_far":  c.RhoD,
			"initial":  c.Initial,
			"steady":   c.Steady,
		},
		Events:    r.Bounces,
		Converged: r.Converged,
	}
	if n := len(r.Times); n > 0 {
		rec.Horizon = r.Times[n-1]
	}
	rec.Series = []Series{
		{Name: "near", Times: r.Times, Levels: r.Near},
		{Name: "far", Times: r.Times, Levels: r.Far},
	}
	if len(r.Near) > 0 {
		rec.Low = math.Min(floats.Min(r.Near), floats.Min(r.Far))
		rec.High = math.Max(floats.Max(r.Near), floats.Max(r.Far))
	}
	return rec
}

// Render 格式和输出内容
func (rec *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// Range 纵轴范围,上下各留 5% 余量
func (rec *Record) Range() (lo, hi float64) {
	pad := 0.05 * (rec.High - rec.Low)
	if pad == 0 {
		pad = 0.05 * math.Max(math.Abs(rec.High), 1)
	}
	return rec.Low - pad, rec.High + pad
}
