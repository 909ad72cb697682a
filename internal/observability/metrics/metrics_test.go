package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherCounter(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	var families []*dto.MetricFamily
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}

func TestRecordLineItem(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewWithRegisterer(reg)
	require.NoError(t, err)

	m.RecordLineItem(true, "calculator")
	m.RecordLineItem(true, "calculator")
	m.RecordLineItem(false, "")

	assert.Equal(t, float64(2), gatherCounter(t, reg, "fmis_line_items_computed_total", map[string]string{"branch": "inclusive", "source": "calculator"}))
	assert.Equal(t, float64(1), gatherCounter(t, reg, "fmis_line_items_computed_total", map[string]string{"branch": "exclusive", "source": "unknown"}))
}

func TestRecordPDF(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewWithRegisterer(reg)
	require.NoError(t, err)

	m.RecordPDF("disbursement_voucher", nil)
	m.RecordPDF("disbursement_voucher", errors.New("boom"))

	assert.Equal(t, float64(1), gatherCounter(t, reg, "fmis_pdf_rendered_total", map[string]string{"document_type": "disbursement_voucher", "outcome": "error"}))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLineItem(true, "x")
		m.RecordDocumentCreated("obligation_request", 10)
		m.RecordTransition("obligation_request", "approved")
		m.RecordPDF("x", nil)
		m.RecordCertificateIssued()
	})
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m, err := NewWithRegisterer(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/api/tax-codes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tax-codes/42", nil))

	assert.Equal(t, float64(1), gatherCounter(t, reg, "fmis_http_requests_total", map[string]string{
		"method": "GET",
		"route":  "/api/tax-codes/:id",
		"status": "204",
	}))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewWithRegisterer(reg)
	require.NoError(t, err)

	_, err = NewWithRegisterer(reg)
	assert.Error(t, err)
}
