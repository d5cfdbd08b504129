package maintenanceapimodels

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
)

const (
	DateLayout            = "2006-01-02"
	TimeLayout            = "15:04"
	WorkRequestedMaxLen   = 300
	TextMaxLen            = 1000
	businessDayStartMins  = 9 * 60
	businessDayFinishMins = 17 * 60
)

var phoneDigits = regexp.MustCompile(`\d`)
var phoneAllowed = regexp.MustCompile(`^[0-9+()\-.\s]+$`)

// SubmitRequest данные формы арендатора
type SubmitRequest struct {
	BuildingName        string `json:"building_name" form:"building_name"`
	BuildingID          string `json:"building_id" form:"building_id"` // ид здания из справочника, не обязательно
	UnitNumber          string `json:"unit_number" form:"unit_number"`
	TenantName          string `json:"tenant_name" form:"tenant_name"`
	TenantEmail         string `json:"tenant_email" form:"tenant_email"`
	TenantPhone         string `json:"tenant_phone" form:"tenant_phone"`
	WorkRequested       string `json:"work_requested" form:"work_requested"`
	SpecialInstructions string `json:"special_instructions" form:"special_instructions"`
	PermissionToEnter   *bool  `json:"permission_to_enter" form:"permission_to_enter"`
	NoPermissionReason  string `json:"no_permission_reason" form:"no_permission_reason"`
	ScheduledDate       string `json:"scheduled_date" form:"scheduled_date"` // 2006-01-02
	ScheduledTime       string `json:"scheduled_time" form:"scheduled_time"` // 15:04
	IsEmergency         bool   `json:"is_emergency" form:"is_emergency"`
	SelectedLanguage    string `json:"selected_language" form:"selected_language"`
	TenantSignature     string `json:"tenant_signature" form:"tenant_signature"` // подпись от руки, data url

	PropertyImages  []models.File `json:"-" form:"-"`
	SignatureUpload *models.File  `json:"-" form:"-"`
}

func (r *SubmitRequest) Trim() {
	r.BuildingName = strings.TrimSpace(r.BuildingName)
	r.BuildingID = strings.TrimSpace(r.BuildingID)
	r.UnitNumber = strings.TrimSpace(r.UnitNumber)
	r.TenantName = strings.TrimSpace(r.TenantName)
	r.TenantEmail = strings.TrimSpace(r.TenantEmail)
	r.TenantPhone = strings.TrimSpace(r.TenantPhone)
	r.WorkRequested = strings.TrimSpace(r.WorkRequested)
	r.SpecialInstructions = strings.TrimSpace(r.SpecialInstructions)
	r.NoPermissionReason = strings.TrimSpace(r.NoPermissionReason)
	r.ScheduledDate = strings.TrimSpace(r.ScheduledDate)
	r.ScheduledTime = strings.TrimSpace(r.ScheduledTime)
	r.SelectedLanguage = strings.ToLower(strings.TrimSpace(r.SelectedLanguage))
	r.TenantSignature = strings.TrimSpace(r.TenantSignature)
}

// Validate проверяет все поля и возвращает полный список ошибок.
// now и loc задают текущий день в часовом поясе организации.
func (r SubmitRequest) Validate(now time.Time, loc *time.Location) apimodels.ValidationErrors {
	errs := apimodels.ValidationErrors{}
	if r.BuildingName == "" {
		errs.Add("building_name", "Building name is required")
	}
	if r.UnitNumber == "" {
		errs.Add("unit_number", "Unit number is required")
	}
	if r.TenantName == "" {
		errs.Add("tenant_name", "Tenant name is required")
	}
	if r.TenantEmail == "" {
		errs.Add("tenant_email", "Email is required")
	} else if addr, err := mail.ParseAddress(r.TenantEmail); err != nil || addr.Address != r.TenantEmail {
		errs.Add("tenant_email", "Email address is not valid")
	}
	if r.TenantPhone == "" {
		errs.Add("tenant_phone", "Phone number is required")
	} else if !validPhone(r.TenantPhone) {
		errs.Add("tenant_phone", "Phone number is not valid")
	}
	if r.WorkRequested == "" {
		errs.Add("work_requested", "Please describe the work requested")
	} else if utf8.RuneCountInString(r.WorkRequested) > WorkRequestedMaxLen {
		errs.Add("work_requested", "Work description must not exceed 300 characters")
	}
	if utf8.RuneCountInString(r.SpecialInstructions) > TextMaxLen {
		errs.Add("special_instructions", "Special instructions are too long")
	}
	if r.PermissionToEnter == nil {
		errs.Add("permission_to_enter", "Please indicate permission to enter")
	} else if !*r.PermissionToEnter {
		if r.NoPermissionReason == "" {
			errs.Add("no_permission_reason", "Please explain why entry is not permitted")
		} else if utf8.RuneCountInString(r.NoPermissionReason) > TextMaxLen {
			errs.Add("no_permission_reason", "Reason is too long")
		}
	}
	r.validateSchedule(errs, now, loc)
	if !models.Language(r.SelectedLanguage).IsValid() {
		errs.Add("selected_language", "Language must be en or es")
	}
	if len(r.PropertyImages) == 0 {
		errs.Add("property_images", "At least one property image is required")
	}
	if r.TenantSignature == "" && (r.SignatureUpload == nil || len(r.SignatureUpload.Body) == 0) {
		errs.Add("signature", "A signature is required")
	}
	return errs
}

func (r SubmitRequest) validateSchedule(errs apimodels.ValidationErrors, now time.Time, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	if r.ScheduledDate == "" {
		errs.Add("scheduled_date", "Scheduled date is required")
	} else if date, err := time.ParseInLocation(DateLayout, r.ScheduledDate, loc); err != nil {
		errs.Add("scheduled_date", "Scheduled date is not valid")
	} else {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			errs.Add("scheduled_date", "Scheduled date must be a weekday (Monday to Friday)")
		}
		localNow := now.In(loc)
		today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
		if date.Before(today) {
			errs.Add("scheduled_date", "Scheduled date must not be in the past")
		}
	}
	if r.ScheduledTime == "" {
		errs.Add("scheduled_time", "Scheduled time is required")
		return
	}
	t, err := time.Parse(TimeLayout, r.ScheduledTime)
	if err != nil {
		errs.Add("scheduled_time", "Scheduled time is not valid")
		return
	}
	mins := t.Hour()*60 + t.Minute()
	if mins < businessDayStartMins || mins > businessDayFinishMins {
		errs.Add("scheduled_time", "Scheduled time must be between 09:00 and 17:00")
	}
}

// ParsedDate дата визита, вызывать только после успешной проверки
func (r SubmitRequest) ParsedDate(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	date, _ := time.ParseInLocation(DateLayout, r.ScheduledDate, loc)
	return date
}

func (r SubmitRequest) Language() models.Language {
	return models.Language(r.SelectedLanguage)
}

func validPhone(phone string) bool {
	if !phoneAllowed.MatchString(phone) {
		return false
	}
	digits := len(phoneDigits.FindAllString(phone, -1))
	return digits >= 7 && digits <= 15
}
