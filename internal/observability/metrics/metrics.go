package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus instruments for the service.
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	lineItems         *prometheus.CounterVec
	documentsCreated  *prometheus.CounterVec
	documentStatus    *prometheus.CounterVec
	documentAmount    *prometheus.HistogramVec
	pdfRendered       *prometheus.CounterVec
	certificateIssued prometheus.Counter
}

// New registers the instruments on the default registerer.
func New() (*Metrics, error) {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the instruments on reg.
func NewWithRegisterer(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmis_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fmis_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		lineItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmis_line_items_computed_total",
			Help: "Line items computed by VAT branch and caller.",
		}, []string{"branch", "source"}),
		documentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmis_documents_created_total",
			Help: "Documents created by type.",
		}, []string{"document_type"}),
		documentStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmis_document_transitions_total",
			Help: "Document status transitions by type and target status.",
		}, []string{"document_type", "status"}),
		documentAmount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fmis_document_net_amount_pesos",
			Help:    "Net amount distribution of created documents.",
			Buckets: []float64{1_000, 10_000, 50_000, 100_000, 500_000, 1_000_000, 10_000_000},
		}, []string{"document_type"}),
		pdfRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmis_pdf_rendered_total",
			Help: "PDF documents rendered by type and outcome.",
		}, []string{"document_type", "outcome"}),
		certificateIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmis_community_tax_certificates_issued_total",
			Help: "Community tax certificates issued.",
		}),
	}

	collectors := []prometheus.Collector{
		m.httpRequests,
		m.httpDuration,
		m.lineItems,
		m.documentsCreated,
		m.documentStatus,
		m.documentAmount,
		m.pdfRendered,
		m.certificateIssued,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordLineItem counts a computed line item.
func (m *Metrics) RecordLineItem(vatable bool, source string) {
	if m == nil {
		return
	}
	branch := "exclusive"
	if vatable {
		branch = "inclusive"
	}
	m.lineItems.WithLabelValues(branch, normalizeLabel(source)).Inc()
}

// RecordDocumentCreated counts a created document and observes its net amount.
func (m *Metrics) RecordDocumentCreated(documentType string, netAmount float64) {
	if m == nil {
		return
	}
	documentType = normalizeLabel(documentType)
	m.documentsCreated.WithLabelValues(documentType).Inc()
	m.documentAmount.WithLabelValues(documentType).Observe(netAmount)
}

// RecordTransition counts a document status change.
func (m *Metrics) RecordTransition(documentType, status string) {
	if m == nil {
		return
	}
	m.documentStatus.WithLabelValues(normalizeLabel(documentType), normalizeLabel(status)).Inc()
}

// RecordPDF counts a rendered PDF.
func (m *Metrics) RecordPDF(documentType string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.pdfRendered.WithLabelValues(normalizeLabel(documentType), outcome).Inc()
}

// RecordCertificateIssued counts an issued community tax certificate.
func (m *Metrics) RecordCertificateIssued() {
	if m == nil {
		return
	}
	m.certificateIssued.Inc()
}

// GinMiddleware records request counts and latency per route template.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func normalizeLabel(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	return value
}
