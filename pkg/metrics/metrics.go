// Package metrics 提供 Prometheus helper，包含定价服务常用 counter/histogram 模板
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数（按路径与状态码）
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 定价请求计数（按模型）
	PricingRequestsTotal *prometheus.CounterVec
	// 定价计算耗时（按模型）
	PricingDuration *prometheus.HistogramVec
	// 参数校验失败计数
	ValidationFailuresTotal prometheus.Counter
	// 二叉树步数分布
	LatticeSteps prometheus.Histogram
	// 蒙特卡洛模拟次数分布
	SimulationPaths prometheus.Histogram

	registry *prometheus.Registry
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		PricingRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "requests_total",
			Help:      "Total pricing computations by model",
		}, []string{"model"}),
		PricingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "duration_seconds",
			Help:      "Pricing computation duration in seconds by model",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"model"}),
		ValidationFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "validation_failures_total",
			Help:      "Total requests rejected for invalid parameters",
		}),
		LatticeSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "lattice_steps",
			Help:      "Binomial lattice step counts",
			Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
		}),
		SimulationPaths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "simulation_paths",
			Help:      "Monte Carlo path counts",
			Buckets:   []float64{1000, 10000, 100000, 1000000, 10000000},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PricingRequestsTotal,
		m.PricingDuration,
		m.ValidationFailuresTotal,
		m.LatticeSteps,
		m.SimulationPaths,
	)

	return m
}

// ObservePricing 记录一次定价计算
func (m *Metrics) ObservePricing(model string, start time.Time) {
	m.PricingRequestsTotal.WithLabelValues(model).Inc()
	m.PricingDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
}

// Handler 返回 Prometheus 指标的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
