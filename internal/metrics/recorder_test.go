package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = NoopRecorder{}
	r.ObserveConversion(ResultSuccess, time.Millisecond, 10, 1)
	r.IncHTTPRequest("/format", 200)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	t.Parallel()

	var p *PrometheusRecorder
	p.ObserveConversion(ResultFailed, time.Millisecond, 10, 0)
	p.IncHTTPRequest("/format", 500)
}
