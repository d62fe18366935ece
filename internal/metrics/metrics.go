// Package metrics exposes Prometheus counters for the membership flows.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "alc"

var (
	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration requests by outcome.",
		},
		[]string{"result"},
	)
	verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "OTP verification attempts by outcome.",
		},
		[]string{"result"},
	)
	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by method and outcome.",
		},
		[]string{"method", "result"},
	)
	providerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_failures_total",
			Help:      "Failed calls into external providers.",
		},
		[]string{"provider"},
	)
	contactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by subject.",
		},
		[]string{"subject"},
	)
)

var registerMetrics sync.Once

// Register adds all collectors to the given registerer once per process.
func Register(reg prometheus.Registerer) {
	registerMetrics.Do(func() {
		reg.MustRegister(registrations, verifications, logins, providerFailures, contactSubmissions)
	})
}

func RecordRegistration(result string) { registrations.WithLabelValues(result).Inc() }

func RecordVerification(result string) { verifications.WithLabelValues(result).Inc() }

func RecordLogin(method, result string) { logins.WithLabelValues(method, result).Inc() }

func RecordProviderFailure(provider string) { providerFailures.WithLabelValues(provider).Inc() }

func RecordContactSubmission(subject string) { contactSubmissions.WithLabelValues(subject).Inc() }
