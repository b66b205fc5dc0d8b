package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	m := New()

	m.Transition("select_destination", nil)
	m.Transition("select_destination", nil)
	m.Transition("continue", errors.New("not allowed"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WizardTransitions.WithLabelValues("select_destination", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WizardTransitions.WithLabelValues("continue", ResultRejected)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Transition("close", nil) })
}

func TestNewRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.PlansConfirmed.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.PlansConfirmed))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PlansConfirmed))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Inquiries.WithLabelValues(ResultOK).Inc()
	m.CatalogRequests.WithLabelValues("banners", SourceCache).Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(out, `wander_inquiries_total{result="ok"} 1`), out)
	assert.Contains(t, out, `wander_catalog_requests_total{endpoint="banners",source="cache"} 1`)
	assert.Contains(t, out, "go_goroutines")
}
