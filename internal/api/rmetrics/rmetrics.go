// Package rmetrics exposes the Prometheus registry next to the RPC services.
package rmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/pkg/metrics"
)

const Path = "/metrics"

// NewRegistry returns a registry holding the folio collectors plus the Go
// runtime and process collectors.
func NewRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	return reg, nil
}

func CreateService(reg *prometheus.Registry) (*api.Service, error) {
	return &api.Service{Path: Path, Handler: metrics.Handler(reg)}, nil
}
