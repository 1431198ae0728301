// Package server exposes the converter over HTTP together with the browser
// interface that copies the result to the clipboard.
//
// Routes, relative to the configured base path:
//
//	GET  {base}                 browser interface
//	GET  {base}static/{file}    interface scripts and styles
//	POST {base}format           {"text": "..."} -> {"html": "...", "text": "...", "error": null}
//	GET  /healthz               liveness
//	GET  {metrics path}         Prometheus metrics, when enabled
package server
