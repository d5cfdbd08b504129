package maintenancereqhandler

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	maintenancereqstore "maintenance-backend/lib/maintenance-req/store"
	messagetemplate "maintenance-backend/lib/message-template"
	"maintenance-backend/lib/metrics"
	"maintenance-backend/lib/utils/lock"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
)

func (i impl) Approve(ctx context.Context, id, adminID, message string) (TransitionResult, error) {
	return i.transition(ctx, id, adminID, models.RequestStatusApproved, message)
}

func (i impl) Reject(ctx context.Context, id, adminID, message string) (TransitionResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		errs := apimodels.ValidationErrors{}
		errs.Add("message", "A rejection reason is required")
		return TransitionResult{}, errs
	}
	return i.transition(ctx, id, adminID, models.RequestStatusRejected, message)
}

// transition статус сохраняется до отправки письма: ошибка письма не откатывает смену статуса.
// Повторное одобрение/отклонение заново отправляет письмо.
func (i impl) transition(ctx context.Context, id, adminID string, status models.RequestStatus, message string) (result TransitionResult, err error) {
	logger := i.getLogger(id).
		WithField("admin_id", adminID).
		WithField("status", status)
	message = strings.TrimSpace(message)
	success, err := lock.WithDelay(ctx, lock.RequestKey(id), i.deps.LockWait, func() error {
		rec, err := i.getRec(id)
		if err != nil {
			return err
		}
		if !rec.Status.IsAllowChange(status) {
			return errors.Wrapf(ErrInvalidTransition, "%s -> %s", rec.Status, status)
		}
		tenantMessage := messagetemplate.DefaultStatusMessage(status, rec.SelectedLanguage)
		if message != "" {
			tenantMessage = i.translateStatusMessage(ctx, rec, message)
		}
		now := i.deps.Now()
		updMap := map[string]interface{}{
			"Status":        status,
			"StatusMessage": tenantMessage,
			"ReviewedAt":    now,
		}
		if adminID != "" {
			updMap["ReviewedByID"] = adminID
		}
		if status == models.RequestStatusRejected {
			updMap["RejectionReason"] = message
		}
		err = i.deps.Store.UpdateWithVersion(id, rec.Version, updMap)
		if err != nil {
			if errors.Is(err, maintenancereqstore.ErrVersionConflict) {
				logger.Warn("заявка изменена параллельно, смена статуса отменена")
			}
			return err
		}
		metrics.StatusTransitionsTotal.WithLabelValues(string(status)).Inc()
		rec, err = i.getRec(id)
		if err != nil {
			return err
		}
		logger.WithField("work_order_number", rec.WorkOrderNumber).Info("статус заявки изменен")
		result.Email = i.deps.Documents.SendStatusEmail(ctx, rec, tenantMessage)
		result.Request = *rec
		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}
	if !success {
		return TransitionResult{}, ErrBusy
	}
	return result, nil
}
