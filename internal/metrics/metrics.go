package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wx_publisher"

// Metrics 渲染与外部调用指标
type Metrics struct {
	renderTotal      *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default 返回注册到全局 Registry 的指标实例
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = MustNew(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// MustNew 创建并注册指标，重复注册会 panic
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "total",
			Help:      "Number of markdown documents rendered, by theme source.",
		}, []string{"source"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Time spent rendering markdown to styled HTML.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"source"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Calls to external services, by service and result.",
		}, []string{"service", "result"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "duration_seconds",
			Help:      "Latency of calls to external services.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
	}
	reg.MustRegister(m.renderTotal, m.renderDuration, m.upstreamTotal, m.upstreamDuration)
	return m
}

// ObserveRender 记录一次渲染
func (m *Metrics) ObserveRender(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.renderTotal.WithLabelValues(source).Inc()
	m.renderDuration.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveUpstream 记录一次外部调用
func (m *Metrics) ObserveUpstream(service string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.upstreamTotal.WithLabelValues(service, result).Inc()
	m.upstreamDuration.WithLabelValues(service).Observe(d.Seconds())
}
