package models

// TemplateData данные для шаблонов писем и pdf
type TemplateData struct {
	WorkOrderNumber     string
	TenantName          string
	TenantEmail         string
	TenantPhone         string
	BuildingName        string
	UnitNumber          string
	Address             string
	ScheduledDate       string
	ScheduledTime       string
	WorkRequested       string
	WorkRequestedOrig   string
	SpecialInstructions string
	SpecialInstrOrig    string
	PermissionToEnter   bool
	NoPermissionReason  string
	NoPermReasonOrig    string
	IsEmergency         bool
	Status              string
	Priority            string
	Language            string
	SubmittedAt         string
	Message             string
	ShowOriginal        bool
	Untranslated        bool
}

type File struct {
	FileName    string
	ContentType string
	Body        []byte
}
