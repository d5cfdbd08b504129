package documents

import (
	"strings"
	"time"

	messagetemplate "maintenance-backend/lib/message-template"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"
)

var dateLayouts = map[models.Language]string{
	models.LanguageEn: "01/02/2006",
	models.LanguageEs: "02/01/2006",
}

// TemplateData данные заявки для писем и pdf.
// forAdmin - английская версия с оригинальным текстом арендатора рядом с переводом.
func TemplateData(rec dbmodels.MaintenanceRequest, lang models.Language, forAdmin bool, loc *time.Location) models.TemplateData {
	if loc == nil {
		loc = time.UTC
	}
	layout, ok := dateLayouts[lang]
	if !ok {
		layout = dateLayouts[models.LanguageEn]
	}
	work := rec.GetWorkRequested()
	instr := rec.GetSpecialInstructions()
	reason := rec.GetNoPermissionReason()
	data := models.TemplateData{
		WorkOrderNumber:     rec.WorkOrderNumber,
		TenantName:          rec.TenantName,
		TenantEmail:         rec.TenantEmail,
		TenantPhone:         rec.TenantPhone,
		BuildingName:        rec.BuildingName,
		UnitNumber:          rec.UnitNumber,
		Address:             address(rec),
		ScheduledTime:       rec.ScheduledTime,
		WorkRequested:       work.Live(),
		WorkRequestedOrig:   work.Original,
		SpecialInstructions: instr.Live(),
		SpecialInstrOrig:    instr.Original,
		PermissionToEnter:   rec.PermissionToEnter,
		NoPermissionReason:  reason.Live(),
		NoPermReasonOrig:    reason.Original,
		IsEmergency:         rec.IsEmergency,
		Status:              messagetemplate.StatusName(rec.Status, lang),
		Priority:            string(rec.Priority),
		Language:            string(rec.SelectedLanguage),
		SubmittedAt:         rec.CreatedAt.In(loc).Format(layout + " 15:04"),
	}
	if !rec.ScheduledDate.IsZero() {
		// дата визита хранится без времени, переводить в пояс не нужно
		data.ScheduledDate = rec.ScheduledDate.Format(layout)
	}
	if forAdmin && rec.SelectedLanguage != models.LanguageEn {
		data.ShowOriginal = work.IsTranslated()
		data.Untranslated = rec.TranslationStatus == models.TranslationFailed
	}
	return data
}

func address(rec dbmodels.MaintenanceRequest) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{rec.PropertyAddress, rec.PropertyCity, strings.TrimSpace(rec.PropertyState + " " + rec.PropertyZip)} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
