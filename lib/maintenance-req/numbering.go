package maintenancereqhandler

import (
	"time"

	"github.com/pkg/errors"
	"maintenance-backend/lib/utils/helpers"
)

const (
	workOrderPrefix      = "WO-"
	workOrderSuffixLen   = 5
	workOrderMaxAttempts = 5
)

var ErrWorkOrderExhausted = errors.New("не удалось подобрать уникальный номер заявки")

// NewWorkOrderNumber WO-YYYYMMDD-XXXXX, дата в часовом поясе организации
func NewWorkOrderNumber(now time.Time, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	suffix, err := helpers.RandomString(workOrderSuffixLen)
	if err != nil {
		return "", errors.Wrap(err, "ошибка генерации номера заявки")
	}
	return workOrderPrefix + now.In(loc).Format("20060102") + "-" + suffix, nil
}
