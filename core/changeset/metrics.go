// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "juju_gui_changeset"

// Collector is a prometheus.Collector that collects metrics about a
// ChangeSet.
type Collector struct {
	records          prometheus.Gauge
	recordsCreated   *prometheus.CounterVec
	commandsEnqueued *prometheus.CounterVec
	commandsExecuted *prometheus.CounterVec
	commandsComplete *prometheus.CounterVec
	immediateCalls   *prometheus.CounterVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "records",
				Help:      "The number of records currently held.",
			},
		),
		recordsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "records_created_total",
				Help:      "The number of records created.",
			}, []string{"type"},
		),
		commandsEnqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "commands_enqueued_total",
				Help:      "The number of commands queued.",
			}, []string{"method"},
		),
		commandsExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "commands_executed_total",
				Help:      "The number of commands handed to the environment.",
			}, []string{"method"},
		),
		commandsComplete: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "commands_completed_total",
				Help:      "The number of command callbacks received from the environment.",
			}, []string{"method"},
		),
		immediateCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "immediate_calls_total",
				Help:      "The number of operations sent to the environment without queueing.",
			}, []string{"method"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.records.Describe(ch)
	c.recordsCreated.Describe(ch)
	c.commandsEnqueued.Describe(ch)
	c.commandsExecuted.Describe(ch)
	c.commandsComplete.Describe(ch)
	c.immediateCalls.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.records.Collect(ch)
	c.recordsCreated.Collect(ch)
	c.commandsEnqueued.Collect(ch)
	c.commandsExecuted.Collect(ch)
	c.commandsComplete.Collect(ch)
	c.immediateCalls.Collect(ch)
}
