package metrics

import "time"

// ResultLabel enumerates conversion outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultEmpty    ResultLabel = "empty"
	ResultRejected ResultLabel = "rejected"
	ResultFailed   ResultLabel = "failed"
)

// Recorder defines observability hooks for conversions and HTTP requests.
type Recorder interface {
	// ObserveConversion records one conversion call.
	ObserveConversion(result ResultLabel, d time.Duration, inputBytes, paragraphs int)
	// IncHTTPRequest counts one served request by route pattern and status code.
	IncHTTPRequest(route string, code int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveConversion(ResultLabel, time.Duration, int, int) {}
func (NoopRecorder) IncHTTPRequest(string, int)                            {}

// Compile-time interface checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
