package xlsexport

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "maintenance-backend/models/db"
)

const requestSheet = "Requests"

type Provider interface {
	ExportRequestList(list []dbmodels.MaintenanceRequest, loc *time.Location) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func requestColumns(loc *time.Location) []column[dbmodels.MaintenanceRequest] {
	return []column[dbmodels.MaintenanceRequest]{
		{"Work order", 20, func(r dbmodels.MaintenanceRequest) interface{} { return r.WorkOrderNumber }},
		{"Submitted", 17, func(r dbmodels.MaintenanceRequest) interface{} { return r.CreatedAt.In(loc).Format("01/02/2006 15:04") }},
		{"Status", 12, func(r dbmodels.MaintenanceRequest) interface{} { return r.Status.ToHuman() }},
		{"Priority", 12, func(r dbmodels.MaintenanceRequest) interface{} { return string(r.Priority) }},
		{"Emergency", 11, func(r dbmodels.MaintenanceRequest) interface{} { return yesNo(r.IsEmergency) }},
		{"Tenant", 22, func(r dbmodels.MaintenanceRequest) interface{} { return r.TenantName }},
		{"Contacts", 26, func(r dbmodels.MaintenanceRequest) interface{} { return r.TenantPhone + "\n" + r.TenantEmail }},
		{"Building", 20, func(r dbmodels.MaintenanceRequest) interface{} { return r.BuildingName }},
		{"Unit", 8, func(r dbmodels.MaintenanceRequest) interface{} { return r.UnitNumber }},
		{"Address", 30, address},
		{"Scheduled", 17, scheduled},
		{"Work requested", 45, func(r dbmodels.MaintenanceRequest) interface{} { return r.WorkRequested }},
		{"Original text", 45, original},
		{"Language", 10, func(r dbmodels.MaintenanceRequest) interface{} { return r.SelectedLanguage.ToHuman() }},
		{"Email delivery", 14, delivery},
	}
}

func (i impl) ExportRequestList(list []dbmodels.MaintenanceRequest, loc *time.Location) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", requestSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	w := newSheetWriter(f, requestSheet, requestColumns(loc))
	if err := w.writeHeader(); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	plain, err := dataStyle(f, "")
	if err != nil {
		return nil, err
	}
	emergency, err := dataStyle(f, "FCE4D6")
	if err != nil {
		return nil, err
	}
	for _, item := range list {
		style := plain
		if item.IsEmergency {
			style = emergency
		}
		if err = w.writeRow(item, style); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = w.freezeHeader(); err != nil {
		return nil, errors.Wrap(err, "ошибка закрепления заголовка в xlsx")
	}
	return f.WriteToBuffer()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func address(item dbmodels.MaintenanceRequest) interface{} {
	if item.PropertyAddress == "" {
		return ""
	}
	return item.PropertyAddress + ", " + item.PropertyCity + ", " + item.PropertyState + " " + item.PropertyZip
}

func scheduled(item dbmodels.MaintenanceRequest) interface{} {
	if item.ScheduledDate.IsZero() {
		return item.ScheduledTime
	}
	return item.ScheduledDate.Format("01/02/2006") + " " + item.ScheduledTime
}

// original текст арендатора, если он отличается от того, что видит администратор
func original(item dbmodels.MaintenanceRequest) interface{} {
	if item.WorkRequestedOriginal == item.WorkRequested {
		return ""
	}
	return item.WorkRequestedOriginal
}

func delivery(item dbmodels.MaintenanceRequest) interface{} {
	if item.EmailDeliveryStatus == nil {
		return ""
	}
	return string(*item.EmailDeliveryStatus)
}
