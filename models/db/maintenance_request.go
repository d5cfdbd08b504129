package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"maintenance-backend/models"
)

type MaintenanceRequest struct {
	BaseModel
	WorkOrderNumber string `gorm:"type:varchar(32);uniqueIndex:idx_work_order_number"`

	TenantName  string `gorm:"type:varchar(255)"`
	TenantEmail string `gorm:"type:varchar(255);index"`
	TenantPhone string `gorm:"type:varchar(32)"`

	BuildingName string    `gorm:"type:varchar(255)"`
	UnitNumber   string    `gorm:"type:varchar(50)"`
	BuildingID   *string   `gorm:"type:varchar(36)"`
	Building     *Building `gorm:"foreignKey:BuildingID"`
	// адрес копируется на момент создания, последующие правки здания на заявку не влияют
	PropertyAddress string `gorm:"type:varchar(255)"`
	PropertyCity    string `gorm:"type:varchar(100)"`
	PropertyState   string `gorm:"type:varchar(50)"`
	PropertyZip     string `gorm:"type:varchar(20)"`

	WorkRequested                 string `gorm:"type:varchar(1000)"`
	WorkRequestedOriginal         string `gorm:"type:varchar(1000)"`
	WorkRequestedTranslated       string `gorm:"type:varchar(1000)"`
	SpecialInstructions           string
	SpecialInstructionsOriginal   string
	SpecialInstructionsTranslated string
	PermissionToEnter             bool
	NoPermissionReason            string
	NoPermissionReasonOriginal    string
	NoPermissionReasonTranslated  string
	TranslationStatus             models.TranslationStatus `gorm:"type:varchar(20)"`

	ScheduledDate time.Time `gorm:"type:date"`
	ScheduledTime string    `gorm:"type:varchar(5)"`
	IsEmergency   bool
	Priority      models.RequestPriority `gorm:"type:varchar(50)"`

	TenantSignature    string // data url, оставлено для совместимости
	SignatureFilePath  string `gorm:"type:varchar(500)"`
	IsDigitalSignature bool

	PropertyImages pq.StringArray `gorm:"type:text[]"`

	SelectedLanguage models.Language      `gorm:"type:varchar(2);index"`
	Status           models.RequestStatus `gorm:"type:varchar(20);index"`
	RejectionReason  string
	StatusMessage    string
	ReviewedByID     *string `gorm:"type:varchar(36)"`
	ReviewedAt       *time.Time
	Version          int `gorm:"not null;default:1"`

	PdfPath             string                     `gorm:"type:varchar(500)"`
	AdminPdfPath        string                     `gorm:"type:varchar(500)"`
	EmailDeliveryStatus *models.EmailDeliveryStatus `gorm:"type:varchar(20)"`
	EmailDeliveryError  string
	EmailSentAt         *time.Time
}

func (r MaintenanceRequest) GetWorkRequested() models.BilingualText {
	return bilingual(r.WorkRequestedOriginal, r.WorkRequestedTranslated, r.WorkRequested)
}

func (r MaintenanceRequest) GetSpecialInstructions() models.BilingualText {
	return bilingual(r.SpecialInstructionsOriginal, r.SpecialInstructionsTranslated, r.SpecialInstructions)
}

func (r MaintenanceRequest) GetNoPermissionReason() models.BilingualText {
	return bilingual(r.NoPermissionReasonOriginal, r.NoPermissionReasonTranslated, r.NoPermissionReason)
}

func (r *MaintenanceRequest) SetWorkRequested(t models.BilingualText) {
	r.WorkRequestedOriginal = t.Original
	r.WorkRequestedTranslated = t.TranslatedValue()
	r.WorkRequested = t.Live()
}

func (r *MaintenanceRequest) SetSpecialInstructions(t models.BilingualText) {
	r.SpecialInstructionsOriginal = t.Original
	r.SpecialInstructionsTranslated = t.TranslatedValue()
	r.SpecialInstructions = t.Live()
}

func (r *MaintenanceRequest) SetNoPermissionReason(t models.BilingualText) {
	r.NoPermissionReasonOriginal = t.Original
	r.NoPermissionReasonTranslated = t.TranslatedValue()
	r.NoPermissionReason = t.Live()
}

// TextUpdMap поля текстов для частичного обновления
func (r MaintenanceRequest) TextUpdMap() map[string]interface{} {
	return map[string]interface{}{
		"WorkRequested":                 r.WorkRequested,
		"WorkRequestedOriginal":         r.WorkRequestedOriginal,
		"WorkRequestedTranslated":       r.WorkRequestedTranslated,
		"SpecialInstructions":           r.SpecialInstructions,
		"SpecialInstructionsOriginal":   r.SpecialInstructionsOriginal,
		"SpecialInstructionsTranslated": r.SpecialInstructionsTranslated,
		"NoPermissionReason":            r.NoPermissionReason,
		"NoPermissionReasonOriginal":    r.NoPermissionReasonOriginal,
		"NoPermissionReasonTranslated":  r.NoPermissionReasonTranslated,
		"TranslationStatus":             r.TranslationStatus,
	}
}

func (r MaintenanceRequest) HasSignature() bool {
	return r.SignatureFilePath != "" || r.TenantSignature != ""
}

func bilingual(original, translated, live string) models.BilingualText {
	if original == "" && translated == "" {
		// запись без истории перевода
		return models.NewUntranslated(live)
	}
	if translated == "" {
		return models.NewPendingTranslation(original)
	}
	return models.NewTranslated(original, translated)
}
