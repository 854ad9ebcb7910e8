// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bestreads_upstream_requests_total",
		Help: "Total number of requests to the upstream catalog",
	}, []string{"endpoint", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bestreads_upstream_request_duration_seconds",
		Help:    "Duration of upstream catalog requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	AuthorLookupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bestreads_author_lookup_failures_total",
		Help: "Author lookups that failed and were dropped from a result",
	})

	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bestreads_tool_calls_total",
		Help: "Total number of MCP tool calls",
	}, []string{"tool", "outcome"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bestreads_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bestreads_http_request_duration_seconds",
		Help:    "Duration of served HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)
