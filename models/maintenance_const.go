package models

import "strings"

type Language string

const (
	LanguageEn Language = "en"
	LanguageEs Language = "es"
)

var languageHumanName = map[Language]string{
	LanguageEn: "English",
	LanguageEs: "Español",
}

func (l Language) IsValid() bool {
	_, ok := languageHumanName[l]
	return ok
}

func (l Language) ToHuman() string {
	if human, exist := languageHumanName[l]; exist {
		return human
	}
	return string(l)
}

func ParseLanguage(s string) Language {
	return Language(strings.ToLower(strings.TrimSpace(s)))
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "Pending",
	RequestStatusApproved: "Approved",
	RequestStatusRejected: "Rejected",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	_, ok := requestStatusHumanName[s]
	return ok
}

// IsAllowChange повторное согласование/отклонение разрешено (переотправка письма),
// смена одного конечного статуса на другой - нет
func (s RequestStatus) IsAllowChange(newStatus RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return newStatus == RequestStatusApproved || newStatus == RequestStatusRejected
	case RequestStatusApproved, RequestStatusRejected:
		return s == newStatus
	}
	return false
}

type EmailDeliveryStatus string

const (
	EmailDeliverySent   EmailDeliveryStatus = "sent"
	EmailDeliveryFailed EmailDeliveryStatus = "failed"
)

type TranslationStatus string

const (
	TranslationNotRequired TranslationStatus = "not_required"
	TranslationDone        TranslationStatus = "translated"
	TranslationFailed      TranslationStatus = "failed"
)

type RequestPriority string

// PriorityRoutine приоритет по умолчанию, в этом процессе не настраивается
const PriorityRoutine RequestPriority = "Routine"

type NotificationType string

const (
	NotificationNewRequest NotificationType = "new_maintenance_request"
)

type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:      "Administrator",
	UserRoleSuperAdmin: "Super administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// FileType назначение файла, используется как каталог в хранилище
type FileType string

const (
	FileDigitalSignature FileType = "digital_signature"
	FileUploadSignature  FileType = "uploaded_signature"
	FilePropertyImage    FileType = "property_images"
	FilePdf              FileType = "pdfs"
)
