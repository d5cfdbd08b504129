package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal принятые заявки по языку
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_submissions_total",
		Help: "Total number of accepted maintenance requests",
	}, []string{"language"})

	// SubmissionRejectedTotal отклоненные формы по категории ошибки
	SubmissionRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_submission_rejected_total",
		Help: "Total number of submissions rejected before persistence",
	}, []string{"category"})

	SignatureWriteTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_signature_write_total",
		Help: "Signature writes by strategy and result",
	}, []string{"strategy", "result"})

	TranslationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_translation_total",
		Help: "Translation calls by result",
	}, []string{"result"})

	EmailTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_email_total",
		Help: "Outgoing emails by recipient kind and result",
	}, []string{"kind", "result"})

	PdfRenderSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maintenance_pdf_render_seconds",
		Help:    "PDF render latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_status_transitions_total",
		Help: "Approve/reject transitions by target status",
	}, []string{"status"})
)

func Result(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
