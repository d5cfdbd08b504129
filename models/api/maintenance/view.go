package maintenanceapimodels

import (
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dbmodels "maintenance-backend/models/db"
)

type BilingualView struct {
	Text       string `json:"text"`       // текст для администратора (перевод, если есть)
	Original   string `json:"original"`   // как ввел арендатор
	Translated string `json:"translated"` // перевод на английский, пусто если перевод не удался
}

type RequestView struct {
	ID                  string                      `json:"id"`
	WorkOrderNumber     string                      `json:"work_order_number"`
	CreatedAt           time.Time                   `json:"created_at"`
	TenantName          string                      `json:"tenant_name"`
	TenantEmail         string                      `json:"tenant_email"`
	TenantPhone         string                      `json:"tenant_phone"`
	BuildingName        string                      `json:"building_name"`
	UnitNumber          string                      `json:"unit_number"`
	BuildingID          string                      `json:"building_id,omitempty"`
	PropertyAddress     string                      `json:"property_address"`
	PropertyCity        string                      `json:"property_city"`
	PropertyState       string                      `json:"property_state"`
	PropertyZip         string                      `json:"property_zip"`
	WorkRequested       BilingualView               `json:"work_requested"`
	SpecialInstructions BilingualView               `json:"special_instructions"`
	PermissionToEnter   bool                        `json:"permission_to_enter"`
	NoPermissionReason  BilingualView               `json:"no_permission_reason"`
	TranslationStatus   models.TranslationStatus    `json:"translation_status"`
	ScheduledDate       string                      `json:"scheduled_date"`
	ScheduledTime       string                      `json:"scheduled_time"`
	IsEmergency         bool                        `json:"is_emergency"`
	Priority            models.RequestPriority      `json:"priority"`
	SignatureFilePath   string                      `json:"signature_file_path"`
	IsDigitalSignature  bool                        `json:"is_digital_signature"`
	PropertyImages      []string                    `json:"property_images"`
	SelectedLanguage    models.Language             `json:"selected_language"`
	Status              models.RequestStatus        `json:"status"`
	RejectionReason     string                      `json:"rejection_reason,omitempty"`
	StatusMessage       string                      `json:"status_message,omitempty"`
	ReviewedAt          *time.Time                  `json:"reviewed_at,omitempty"`
	PdfPath             string                      `json:"pdf_path"`
	AdminPdfPath        string                      `json:"admin_pdf_path"`
	EmailDeliveryStatus *models.EmailDeliveryStatus `json:"email_delivery_status"`
	EmailDeliveryError  string                      `json:"email_delivery_error,omitempty"`
	EmailSentAt         *time.Time                  `json:"email_sent_at,omitempty"`
	Version             int                         `json:"version"`
}

func bilingualConvert(t models.BilingualText) BilingualView {
	return BilingualView{
		Text:       t.Live(),
		Original:   t.Original,
		Translated: t.TranslatedValue(),
	}
}

func RequestConvert(rec dbmodels.MaintenanceRequest) RequestView {
	view := RequestView{
		ID:                  rec.ID,
		WorkOrderNumber:     rec.WorkOrderNumber,
		CreatedAt:           rec.CreatedAt,
		TenantName:          rec.TenantName,
		TenantEmail:         rec.TenantEmail,
		TenantPhone:         rec.TenantPhone,
		BuildingName:        rec.BuildingName,
		UnitNumber:          rec.UnitNumber,
		PropertyAddress:     rec.PropertyAddress,
		PropertyCity:        rec.PropertyCity,
		PropertyState:       rec.PropertyState,
		PropertyZip:         rec.PropertyZip,
		WorkRequested:       bilingualConvert(rec.GetWorkRequested()),
		SpecialInstructions: bilingualConvert(rec.GetSpecialInstructions()),
		PermissionToEnter:   rec.PermissionToEnter,
		NoPermissionReason:  bilingualConvert(rec.GetNoPermissionReason()),
		TranslationStatus:   rec.TranslationStatus,
		ScheduledTime:       rec.ScheduledTime,
		IsEmergency:         rec.IsEmergency,
		Priority:            rec.Priority,
		SignatureFilePath:   rec.SignatureFilePath,
		IsDigitalSignature:  rec.IsDigitalSignature,
		PropertyImages:      rec.PropertyImages,
		SelectedLanguage:    rec.SelectedLanguage,
		Status:              rec.Status,
		RejectionReason:     rec.RejectionReason,
		StatusMessage:       rec.StatusMessage,
		ReviewedAt:          rec.ReviewedAt,
		PdfPath:             rec.PdfPath,
		AdminPdfPath:        rec.AdminPdfPath,
		EmailDeliveryStatus: rec.EmailDeliveryStatus,
		EmailDeliveryError:  rec.EmailDeliveryError,
		EmailSentAt:         rec.EmailSentAt,
		Version:             rec.Version,
	}
	if rec.BuildingID != nil {
		view.BuildingID = *rec.BuildingID
	}
	if !rec.ScheduledDate.IsZero() {
		view.ScheduledDate = rec.ScheduledDate.Format(DateLayout)
	}
	if view.PropertyImages == nil {
		view.PropertyImages = []string{}
	}
	return view
}

// RequestFilter фильтр списка заявок в консоли администратора
type RequestFilter struct {
	apimodels.Pagination
	Status    models.RequestStatus `json:"status"`    // pending/approved/rejected
	Language  models.Language      `json:"language"`  // en/es
	Search    string               `json:"search"`    // номер заявки, арендатор, здание
	DateFrom  *time.Time           `json:"date_from"` // дата создания с
	DateTo    *time.Time           `json:"date_to"`   // дата создания по
	Emergency *bool                `json:"emergency"`
}

func (f RequestFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.New("некорректный статус заявки")
	}
	if f.Language != "" && !f.Language.IsValid() {
		return errors.New("некорректный язык заявки")
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return errors.New("дата окончания периода раньше даты начала")
	}
	return nil
}

// TransitionRequest сообщение арендатору при одобрении/отклонении
type TransitionRequest struct {
	Message string `json:"message"`
}

// TransitionView результат смены статуса: статус сохраняется до отправки письма,
// ошибка отправки возвращается отдельно
type TransitionView struct {
	Request    RequestView `json:"request"`
	EmailSent  bool        `json:"email_sent"`
	EmailError string      `json:"email_error,omitempty"`
}

type ResendPdfRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r ResendPdfRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("Email address is not valid")
	}
	return nil
}

type SubmitView struct {
	ID              string `json:"id"`
	WorkOrderNumber string `json:"work_order_number"`
	Redirect        string `json:"redirect"` // куда перейти клиенту после отправки
}

// GuardView состояние сессии арендатора для страниц формы и благодарности
type GuardView struct {
	Submitted       bool       `json:"submitted"`
	Redirect        string     `json:"redirect,omitempty"`
	WorkOrderNumber string     `json:"work_order_number,omitempty"`
	TenantName      string     `json:"tenant_name,omitempty"`
	TenantEmail     string     `json:"tenant_email,omitempty"`
	SubmissionTime  *time.Time `json:"submission_time,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}
