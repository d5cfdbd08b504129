package dbmodels

import "time"

// SubmissionGuard отметка об успешной отправке заявки в рамках сессии браузера
type SubmissionGuard struct {
	Submitted       bool      `json:"submitted"`
	SubmissionTime  time.Time `json:"submission_time"`
	ExpiresAt       time.Time `json:"expires_at"`
	RequestID       string    `json:"request_id"`
	WorkOrderNumber string    `json:"work_order_number"`
	TenantName      string    `json:"tenant_name"`
	TenantEmail     string    `json:"tenant_email"`
}

func (g SubmissionGuard) IsLive(now time.Time) bool {
	return g.Submitted && now.Before(g.ExpiresAt)
}
