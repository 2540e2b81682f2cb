// Package lattice 两段级联无损传输线的事件驱动反射(Bewley 格形图)仿真.
package lattice

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"bewley/coeff"
	"bewley/event"
	"bewley/internal/logging"
	"bewley/types"
)

// checkEvery 每处理多少事件检查一次上下文
const checkEvery = 1024

// Result 仿真结果
type Result struct {
	Params       types.Params       // 物理参数
	Coefficients coeff.Coefficients // 系数
	Near         *Trace             // 近端波形
	Central      *Trace             // 结点波形
	Far          *Trace             // 远端波形
	Events       int                // 已处理事件数
	Dropped      int                // 低于截断阈值丢弃的事件数
	Pending      int                // 未处理事件数
	Last         float64            // 最后弹出事件的时间
	Horizon      float64            // 统一的结束时间
	Converged    bool               // 是否因容差衰减而结束
}

// Traces 三个波形 (近端, 结点, 远端)
func (r *Result) Traces() [3]*Trace { return [3]*Trace{r.Near, r.Central, r.Far} }

// state 单次仿真状态,不跨调用共享
type state struct {
	p      types.Params
	c      coeff.Coefficients
	cutoff float64
	queue  *event.Scheduler

	near, central, far *Trace

	last    float64
	events  int
	dropped int
}

func newState(p types.Params, c coeff.Coefficients) *state {
	s := &state{
		p:       p,
		c:       c,
		cutoff:  c.Cutoff(p.Tolerance),
		queue:   event.NewScheduler(),
		near:    newTrace(p.Delay0),
		central: newTrace(p.Delay0),
		far:     newTrace(p.Delay0),
		last:    p.Delay0,
	}
	// 近端在 t=0 注入初始值,首个波包沿第0段到达结点
	s.near.Jump(0, c.Initial)
	s.spawn(p.Delay0, types.InterfaceB, c.Initial)
	return s
}

// spawn 幅值非零时入队
func (s *state) spawn(t float64, it types.Interface, magnitude float64) {
	if magnitude == 0 {
		return
	}
	s.queue.Push(event.New(t, it, magnitude))
}

// finalize 三个波形统一延长到 last+max(T0,T1)
func (s *state) finalize() float64 {
	horizon := s.last + s.p.Horizon()
	for _, tr := range []*Trace{s.near, s.central, s.far} {
		tr.Hold(horizon)
	}
	return horizon
}

// loop 按时间顺序处理事件直到队列为空或达到上限
// 低于截断阈值的事件总是丢弃,上限只约束需要处理的事件
func (s *state) loop(ctx context.Context, o Options) error {
	for !s.queue.Empty() {
		if s.queue.Popped()%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("lattice run cancelled: %w", err)
			}
		}
		next, _ := s.queue.Peek()
		if math.Abs(next.Magnitude) <= s.cutoff {
			s.queue.Pop()
			s.last = next.Time
			s.dropped++
			o.Observer.Event(next, true)
			continue
		}
		if s.events >= o.MaxEvents {
			return fmt.Errorf("%w: %d events processed, %d pending", types.ErrBudgetExceeded, s.events, s.queue.Len())
		}
		if o.MaxTime > 0 && next.Time > o.MaxTime {
			return fmt.Errorf("%w: next event at %v exceeds max time %v", types.ErrBudgetExceeded, next.Time, o.MaxTime)
		}
		e, _ := s.queue.Pop()
		s.last = e.Time
		if !e.Interface.Valid() {
			return fmt.Errorf("%w: event %v at unknown interface", types.ErrInvalidParameter, e)
		}
		handlers[e.Interface](s, e)
		s.events++
		o.Observer.Event(e, false)
	}
	return nil
}

// Run 执行一次仿真
// 参数非法时返回 nil 结果; 达到上限时返回已收尾的部分结果和 ErrBudgetExceeded
func Run(ctx context.Context, p types.Params, opts ...Option) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := NewOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}
	c, err := coeff.New(p, o.Quantity, o.Reference)
	if err != nil {
		return nil, err
	}
	o.Reporter.Report(c)

	ctx, span := otel.Tracer("bewley/lattice").Start(ctx, "lattice.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("quantity", o.Quantity.Name()),
		attribute.Float64("rho_a", c.RhoA),
		attribute.Float64("rho_d", c.RhoD),
	)
	log := o.Logger.With(logging.String("quantity", o.Quantity.Name()))
	log.Debug(ctx, "lattice run started",
		logging.Float("initial", c.Initial),
		logging.Float("steady", c.Steady),
		logging.Float("cutoff", c.Cutoff(p.Tolerance)),
		logging.Int("max_events", o.MaxEvents),
	)
	if c.Lossless() {
		log.Debug(ctx, "both ends fully reflective; run is bounded by the event budget only")
	}

	s := newState(p, c)
	err = s.loop(ctx, o)
	r := &Result{
		Params:       p,
		Coefficients: c,
		Near:         s.near,
		Central:      s.central,
		Far:          s.far,
		Events:       s.events,
		Dropped:      s.dropped,
		Pending:      s.queue.Len(),
		Last:         s.last,
		Horizon:      s.finalize(),
		Converged:    err == nil,
	}
	span.SetAttributes(
		attribute.Int("events", r.Events),
		attribute.Int("dropped", r.Dropped),
		attribute.Bool("converged", r.Converged),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn(ctx, "lattice run stopped early", logging.Err(err), logging.Int("events", r.Events), logging.Int("pending", r.Pending))
	} else {
		log.Debug(ctx, "lattice run finished", logging.Int("events", r.Events), logging.Int("dropped", r.Dropped), logging.Float("horizon", r.Horizon))
	}
	o.Observer.Finished(r, err)
	return r, err
}
