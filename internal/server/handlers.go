package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2word"
	"github.com/alnah/go-md2word/internal/assets"
	"github.com/alnah/go-md2word/internal/metrics"
)

// formatRequest is the body of POST {base}format.
type formatRequest struct {
	Text string `json:"text"`
}

// formatResponse is the reply of POST {base}format. Error is null on success.
type formatResponse struct {
	HTML  string  `json:"html"`
	Text  string  `json:"text"`
	Error *string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(s.indexPage)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	data, err := s.assets.LoadStatic(name)
	if err != nil {
		if !errors.Is(err, assets.ErrStaticNotFound) && !errors.Is(err, assets.ErrInvalidAssetName) {
			s.logger.Warn("static asset failed",
				slog.String("request_id", requestIDFrom(r.Context())),
				slog.String("name", name),
				slog.Any("error", err))
		}
		http.NotFound(w, r)
		return
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.recorder.ObserveConversion(metrics.ResultRejected, time.Since(start), 0, 0)
			writeFormatError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.recorder.ObserveConversion(metrics.ResultRejected, time.Since(start), 0, 0)
		writeFormatError(w, http.StatusBadRequest, "malformed request body: expected {\"text\": \"...\"}")
		return
	}

	result, err := s.converter.Convert(r.Context(), md2word.Input{Markdown: req.Text})
	if err != nil {
		status := http.StatusInternalServerError
		label := metrics.ResultFailed
		if errors.Is(err, md2word.ErrInputTooLarge) {
			status = http.StatusRequestEntityTooLarge
			label = metrics.ResultRejected
		}
		s.recorder.ObserveConversion(label, time.Since(start), len(req.Text), 0)
		s.logger.Error("format failed",
			slog.String("request_id", requestIDFrom(r.Context())),
			slog.Int("input_bytes", len(req.Text)),
			slog.Any("error", err))
		writeFormatError(w, status, err.Error())
		return
	}

	label := metrics.ResultSuccess
	if result.HTML == "" {
		label = metrics.ResultEmpty
	}
	s.recorder.ObserveConversion(label, time.Since(start), len(req.Text), result.Paragraphs)
	writeJSON(w, http.StatusOK, formatResponse{HTML: result.HTML, Text: result.Text})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.cfg.Version,
	})
}

// writeFormatError writes the error shape of the format endpoint.
func writeFormatError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, formatResponse{Error: &msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
