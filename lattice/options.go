package lattice

import (
	"fmt"

	"bewley/coeff"
	"bewley/event"
	"bewley/internal/logging"
	"bewley/report"
	"bewley/types"
)

// Observer 仿真过程观察接口
type Observer interface {
	Event(e event.Event, dropped bool) // 每个弹出的事件
	Finished(r *Result, err error)     // 仿真结束
}

// nopObserver 空观察者
type nopObserver struct{}

func (nopObserver) Event(event.Event, bool)  {}
func (nopObserver) Finished(*Result, error) {}

// Options 仿真配置
type Options struct {
	Quantity  coeff.Quantity      // 追踪的物理量
	Reference coeff.ReferenceMode // 截断参考
	MaxEvents int                 // 最大处理事件数
	MaxTime   float64             // 最大仿真时间,0为不限制
	Reporter  report.Reporter     // 系数输出
	Observer  Observer            // 过程观察
	Logger    logging.Logger      // 日志
}

// Option 配置函数
type Option func(*Options)

// WithQuantity 设置物理量
func WithQuantity(q coeff.Quantity) Option { return func(o *Options) { o.Quantity = q } }

// WithReference 设置截断参考
func WithReference(m coeff.ReferenceMode) Option { return func(o *Options) { o.Reference = m } }

// WithMaxEvents 设置最大处理事件数
func WithMaxEvents(n int) Option { return func(o *Options) { o.MaxEvents = n } }

// WithMaxTime 设置最大仿真时间
func WithMaxTime(t float64) Option { return func(o *Options) { o.MaxTime = t } }

// WithReporter 设置系数输出
func WithReporter(r report.Reporter) Option { return func(o *Options) { o.Reporter = r } }

// WithObserver 设置过程观察
func WithObserver(ob Observer) Option { return func(o *Options) { o.Observer = ob } }

// WithLogger 设置日志
func WithLogger(l logging.Logger) Option { return func(o *Options) { o.Logger = l } }

// NewOptions 默认配置叠加选项
func NewOptions(opts ...Option) Options {
	o := Options{
		Quantity:  coeff.Voltage,
		MaxEvents: types.MaxEvents,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Quantity == nil {
		o.Quantity = coeff.Voltage
	}
	if o.Reporter == nil {
		o.Reporter = report.Nop{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Logger == nil {
		o.Logger = logging.Noop()
	}
	return o
}

// validate 检查上限配置
func (o Options) validate() error {
	if o.MaxEvents <= 0 {
		return fmt.Errorf("%w: max events must be positive, got %d", types.ErrInvalidParameter, o.MaxEvents)
	}
	if o.MaxTime < 0 {
		return fmt.Errorf("%w: max time must be nonnegative, got %v", types.ErrInvalidParameter, o.MaxTime)
	}
	return nil
}
