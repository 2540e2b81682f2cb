package debug

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"bewley/internal/logging"
)

// Charts 曲线绘制
type Charts struct {
	*Record
}

// NewCharts 由记录创建
func NewCharts(rec *Record) *Charts { return &Charts{Record: rec} }

// Render 渲染网页
func (c *Charts) Render(w io.Writer) error {
	title := c.Title
	if title == "" {
		title = "格形图"
	}
	lo, hi := c.Range()
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s [%s] 随时间变化阶梯曲线", c.Quantity, c.Unit),
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:  "value",
			Name:  "t",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
			Min:   lo,
			Max:   hi,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(false),
	)
	// 时间轴为数值轴,每个点写为 [t, v]
	for _, s := range c.Series {
		items := make([]opts.LineData, len(s.Times))
		for i := range s.Times {
			items[i] = opts.LineData{Value: []any{s.Times[i], s.Levels[i]}}
		}
		line.AddSeries(s.Name, items)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
		ShowSymbol: opts.Bool(false),
	}))
	// 系数表
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "系数",
			Subtitle: "反射/透射系数与参考值",
		}),
	)
	names := sortedKeys(c.Coefficients)
	bars := make([]opts.BarData, len(names))
	for i, n := range names {
		bars[i] = opts.BarData{Value: c.Coefficients[n]}
	}
	bar.SetXAxis(names).AddSeries("value", bars)
	// 构建界面
	page := components.NewPage()
	page.AddCharts(line, bar)
	return page.Render(w)
}

// Handler 发布到网页面,错误写入请求上下文中的日志
func (c *Charts) Handler(w http.ResponseWriter, r *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(r.Context(), err)
	}
}

func (c *Charts) Error(ctx context.Context, err error) {
	logging.LoggerFromContext(ctx).Error(ctx, "render charts", logging.String("title", c.Title), logging.Err(err))
}
