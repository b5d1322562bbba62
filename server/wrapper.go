// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Wrapper interface {
	// WrapHandler wraps an http.Handler.
	WrapHandler(h http.Handler) http.Handler
}

var _ Wrapper = (*metricsWrapper)(nil)

type metricsWrapper struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsWrapper counts requests and their latency by path.
func NewMetricsWrapper(r prometheus.Registerer) (Wrapper, error) {
	m := &metricsWrapper{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "api",
			Name:      "requests",
			Help:      "number of requests served",
		}, []string{"path"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "api",
			Name:      "request_duration_seconds",
			Help:      "time spent serving requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.requests),
		r.Register(m.duration),
	)
	return m, errs.Err
}

func (m *metricsWrapper) WrapHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		m.requests.WithLabelValues(r.URL.Path).Inc()
		m.duration.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
