// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package observability records session counters with Prometheus.
//
// The console has no network surface, so metrics are exported by writing the
// registry to a textfile (node_exporter textfile collector format) on exit.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
)

// Captcha attempt results.
const (
	CaptchaMatched    = "matched"
	CaptchaMismatched = "mismatched"
)

// Metrics contains the counters updated by the session controller. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	MenuSelections  *prometheus.CounterVec
	InputRejections *prometheus.CounterVec
	CaptchaAttempts *prometheus.CounterVec
	Logins          *prometheus.CounterVec
}

// NewMetrics creates and registers the session counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MenuSelections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holologin_menu_selections_total",
				Help: "Total number of accepted menu choices by option",
			},
			[]string{"choice"},
		),
		InputRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holologin_input_rejections_total",
				Help: "Total number of rejected console entries by reason code",
			},
			[]string{"reason"},
		),
		CaptchaAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holologin_captcha_attempts_total",
				Help: "Total number of captcha answers by result",
			},
			[]string{"result"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holologin_logins_total",
				Help: "Total number of completed logins by locale",
			},
			[]string{"locale"},
		),
	}

	reg.MustRegister(m.MenuSelections)
	reg.MustRegister(m.InputRejections)
	reg.MustRegister(m.CaptchaAttempts)
	reg.MustRegister(m.Logins)

	return m
}

// RecordMenuChoice counts an accepted menu choice.
func (m *Metrics) RecordMenuChoice(choice int) {
	if m == nil {
		return
	}
	m.MenuSelections.WithLabelValues(strconv.Itoa(choice)).Inc()
}

// RecordRejection counts a rejected entry. reason is an error code.
func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.InputRejections.WithLabelValues(reason).Inc()
}

// RecordCaptcha counts one captcha answer.
func (m *Metrics) RecordCaptcha(matched bool) {
	if m == nil {
		return
	}
	result := CaptchaMismatched
	if matched {
		result = CaptchaMatched
	}
	m.CaptchaAttempts.WithLabelValues(result).Inc()
}

// RecordLogin counts a completed login.
func (m *Metrics) RecordLogin(locale string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(locale).Inc()
}

// Recorder owns a private registry and the metrics registered on it.
type Recorder struct {
	registry *prometheus.Registry
	metrics  *Metrics
}

// NewRecorder creates a Recorder with a fresh registry, avoiding the global one.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	return &Recorder{
		registry: registry,
		metrics:  NewMetrics(registry),
	}
}

// Metrics returns the counters for recording session events.
func (r *Recorder) Metrics() *Metrics {
	return r.metrics
}

// WriteTextfile atomically writes all metrics to path. An empty path is a
// no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return oops.Code("METRICS_WRITE_FAILED").With("path", path).Wrapf(err, "write metrics textfile")
	}
	return nil
}
