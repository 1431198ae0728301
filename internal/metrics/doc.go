// Package metrics records conversion and HTTP metrics for the md2word server.
//
// Components receive a Recorder; NoopRecorder is the default, so code that
// records metrics never checks whether metrics are enabled. When the server
// enables metrics it swaps in a PrometheusRecorder registered on its own
// registry and exposes that registry through HTTPHandler.
package metrics
