// Package observability 仿真运行的 Prometheus 指标与 OpenTelemetry 追踪.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bewley/event"
	"bewley/lattice"
	"bewley/types"
)

// Collector 仿真指标,实现 lattice.Observer
type Collector struct {
	gatherer prometheus.Gatherer

	Runs        *prometheus.CounterVec
	Events      *prometheus.CounterVec
	RunEvents   *prometheus.HistogramVec
	LastHorizon prometheus.Gauge
}

// NewCollector 注册指标,reg 为 nil 时使用全局注册表
// 重复注册时复用已有指标
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_runs_total",
		Help: "Total number of lattice runs, labeled by quantity and outcome.",
	}, []string{"quantity", "outcome"}), "lattice_runs_total")
	if err != nil {
		return nil, err
	}
	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_events_total",
		Help: "Wave events popped from the scheduler, labeled by interface and disposition.",
	}, []string{"interface", "disposition"}), "lattice_events_total")
	if err != nil {
		return nil, err
	}
	runEvents, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lattice_run_events",
		Help:    "Number of wave events handled per run.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"quantity"}), "lattice_run_events")
	if err != nil {
		return nil, err
	}
	horizon := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lattice_last_horizon",
		Help: "Common final time horizon of the most recent run.",
	})
	if err := reg.Register(horizon); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(prometheus.Gauge)
		if !ok {
			return nil, fmt.Errorf("collector lattice_last_horizon already registered with incompatible type")
		}
		horizon = existing
	}

	return &Collector{
		gatherer:    gatherer,
		Runs:        runs,
		Events:      events,
		RunEvents:   runEvents,
		LastHorizon: horizon,
	}, nil
}

// Event 记录弹出的事件
func (c *Collector) Event(e event.Event, dropped bool) {
	if c == nil {
		return
	}
	disposition := "handled"
	if dropped {
		disposition = "dropped"
	}
	c.Events.WithLabelValues(e.Interface.String(), disposition).Inc()
}

// Finished 记录一次仿真结果
func (c *Collector) Finished(r *lattice.Result, err error) {
	if c == nil || r == nil {
		return
	}
	quantity := "unknown"
	if r.Coefficients.Quantity != nil {
		quantity = r.Coefficients.Quantity.Name()
	}
	c.Runs.WithLabelValues(quantity, Outcome(err)).Inc()
	c.RunEvents.WithLabelValues(quantity).Observe(float64(r.Events))
	c.LastHorizon.Set(r.Horizon)
}

// Outcome 错误分类标签
func Outcome(err error) string {
	switch {
	case err == nil:
		return "converged"
	case errors.Is(err, types.ErrBudgetExceeded):
		return "budget_exceeded"
	case errors.Is(err, types.ErrInvalidParameter):
		return "invalid"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

// Handler /metrics 接口
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
