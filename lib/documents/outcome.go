package documents

const (
	StageAdminPdf    = "admin_pdf"
	StageTenantPdf   = "tenant_pdf"
	StageTenantEmail = "tenant_email"
	StageAdminEmail  = "admin_email"
)

// StageOutcome результат одного побочного шага после сохранения заявки
type StageOutcome struct {
	Stage   string
	Done    bool
	Skipped bool
	Path    string
	Err     error
}

func (s StageOutcome) Failed() bool {
	return !s.Done && !s.Skipped
}

func (s StageOutcome) ErrorText() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Outcome результат формирования документов и рассылки по заявке.
// Ошибки здесь не отменяют сохранение заявки.
type Outcome struct {
	AdminPdf    StageOutcome
	TenantPdf   StageOutcome
	TenantEmail StageOutcome
	AdminEmail  StageOutcome
}

func (o Outcome) Stages() []StageOutcome {
	return []StageOutcome{o.AdminPdf, o.TenantPdf, o.TenantEmail, o.AdminEmail}
}

func (o Outcome) HasFailures() bool {
	for _, stage := range o.Stages() {
		if stage.Failed() {
			return true
		}
	}
	return false
}
