// Package metrics holds the Prometheus instruments Folio exposes on
// /metrics.  All collectors are registered with the global registry, so
// importing this package is enough to publish them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for FormSubmissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeForged   = "forged" // CSRF check failed
)

var (
	FormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_form_submissions_total",
			Help: "Form submissions by form and outcome.",
		}, []string{"form", "outcome"})

	FieldInvalid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_form_field_invalid_total",
			Help: "Fields left invalid after a submit, by form and field.",
		}, []string{"form", "field"})

	FormEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_form_events_total",
			Help: "Browser events replayed into the page model, by type.",
		}, []string{"type"})

	ProjectWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_project_writes_total",
			Help: "Project repository writes by operation.",
		}, []string{"op"})

	Projects = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_projects",
			Help: "Number of projects at the last listing.",
		})
)

func init() {
	prometheus.MustRegister(
		FormSubmissions,
		FieldInvalid,
		FormEvents,
		ProjectWrites,
		Projects,
	)
}
