// Package bewley 两段级联无损传输线的阶跃响应格形图仿真器.
package bewley

import (
	"context"

	"bewley/debug"
	"bewley/internal/logging"
	"bewley/lattice"
	"bewley/load"
	"bewley/report"
	"bewley/single"
	"bewley/sweep"
)

// Simulator 仿真器
type Simulator struct {
	*load.Config
	Reporter report.Reporter  // 系数输出
	Observer lattice.Observer // 过程观察
	Logger   logging.Logger   // 日志
}

// NewSimulator 初始化
func NewSimulator() *Simulator {
	return &Simulator{Config: load.NewConfig(), Logger: logging.Noop()}
}

// Load 加载参数卡片文件
func (s *Simulator) Load(filename string) error {
	cfg, err := load.File(filename)
	if err != nil {
		return err
	}
	s.Config = cfg
	return nil
}

// Export 导出参数卡片文件
func (s *Simulator) Export(filename string) error { return load.ExportFile(filename, s.Config) }

// options 合并配置与调用选项,调用选项优先
func (s *Simulator) options(opts []lattice.Option) []lattice.Option {
	all := s.Config.Options()
	if s.Reporter != nil {
		all = append(all, lattice.WithReporter(s.Reporter))
	}
	if s.Observer != nil {
		all = append(all, lattice.WithObserver(s.Observer))
	}
	if s.Logger != nil {
		all = append(all, lattice.WithLogger(s.Logger))
	}
	return append(all, opts...)
}

// Simulate 进行仿真
func (s *Simulator) Simulate(ctx context.Context, opts ...lattice.Option) (*lattice.Result, error) {
	ctx, log := logging.WithRunLogger(ctx, s.Logger)
	opts = append(opts, lattice.WithLogger(log))
	return lattice.Run(ctx, s.Params, s.options(opts)...)
}

// Record 仿真并生成调试记录,未收敛时仍返回部分记录
func (s *Simulator) Record(ctx context.Context, opts ...lattice.Option) (*debug.Record, error) {
	r, err := s.Simulate(ctx, opts...)
	if r == nil {
		return nil, err
	}
	return debug.FromResult(s.Title, r), err
}

// Single 以第0段参数计算单段反射图
func (s *Simulator) Single(opts ...single.Option) (*single.Result, error) {
	p := single.NewParams(s.Params.Source, s.Params.Delay0, s.Params.Z0, s.Params.Rs, s.Params.Rt)
	if s.Reporter != nil {
		opts = append([]single.Option{single.WithReporter(s.Reporter)}, opts...)
	}
	return single.Run(p, opts...)
}

// Sweep 对单个参数做并行扫描
func (s *Simulator) Sweep(ctx context.Context, axis sweep.Axis, values []float64, limit int, opts ...lattice.Option) ([]sweep.Point, error) {
	all := s.Config.Options()
	if s.Observer != nil {
		all = append(all, lattice.WithObserver(s.Observer))
	}
	return sweep.Run(ctx, s.Params, axis, values, limit, append(all, opts...)...)
}
