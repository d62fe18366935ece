package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(registrations.WithLabelValues("otp_sent"))
	RecordRegistration("otp_sent")
	RecordRegistration("otp_sent")
	assert.Equal(t, before+2, testutil.ToFloat64(registrations.WithLabelValues("otp_sent")))

	before = testutil.ToFloat64(logins.WithLabelValues("email", "ok"))
	RecordLogin("email", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(logins.WithLabelValues("email", "ok")))

	before = testutil.ToFloat64(providerFailures.WithLabelValues("mailgun"))
	RecordProviderFailure("mailgun")
	assert.Equal(t, before+1, testutil.ToFloat64(providerFailures.WithLabelValues("mailgun")))
}

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() {
		Register(reg)
		Register(reg)
	})
}
