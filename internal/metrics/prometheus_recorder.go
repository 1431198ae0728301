package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "md2word"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	conversions        *prom.CounterVec
	conversionDuration prom.Histogram
	paragraphUnits     prom.Histogram
	inputBytes         prom.Histogram
	httpRequests       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by result",
		}, []string{"result"}),
		conversionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Duration of Markdown to styled HTML conversions",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		paragraphUnits: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "paragraph_units",
			Help:      "Paragraph units rendered per conversion",
			Buckets:   prom.ExponentialBuckets(1, 2, 10),
		}),
		inputBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "input_bytes",
			Help:      "Size of submitted Markdown",
			Buckets:   prom.ExponentialBuckets(64, 4, 9),
		}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(pr.conversions, pr.conversionDuration, pr.paragraphUnits, pr.inputBytes, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveConversion(result ResultLabel, d time.Duration, inputBytes, paragraphs int) {
	if p == nil {
		return
	}
	p.conversions.WithLabelValues(string(result)).Inc()
	p.conversionDuration.Observe(d.Seconds())
	p.inputBytes.Observe(float64(inputBytes))
	if result == ResultSuccess {
		p.paragraphUnits.Observe(float64(paragraphs))
	}
}

func (p *PrometheusRecorder) IncHTTPRequest(route string, code int) {
	if p == nil {
		return
	}
	p.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
