package messagetemplate

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"maintenance-backend/models"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

type Kind string

const (
	KindConfirmation    Kind = "confirmation"
	KindAdminNewRequest Kind = "admin_new_request"
	KindApproved        Kind = "status_approved"
	KindRejected        Kind = "status_rejected"
	KindResend          Kind = "resend"
	KindPdf             Kind = "pdf"
)

var subjects = map[Kind]map[models.Language]string{
	KindConfirmation: {
		models.LanguageEn: "Maintenance request received - %s",
		models.LanguageEs: "Solicitud de mantenimiento recibida - %s",
	},
	KindAdminNewRequest: {
		models.LanguageEn: "New maintenance request %s",
	},
	KindApproved: {
		models.LanguageEn: "Maintenance request approved - %s",
		models.LanguageEs: "Solicitud de mantenimiento aprobada - %s",
	},
	KindRejected: {
		models.LanguageEn: "Maintenance request declined - %s",
		models.LanguageEs: "Solicitud de mantenimiento rechazada - %s",
	},
	KindResend: {
		models.LanguageEn: "Maintenance request %s (PDF copy)",
		models.LanguageEs: "Solicitud de mantenimiento %s (copia en PDF)",
	},
}

var pdfTitles = map[models.Language]string{
	models.LanguageEn: "Maintenance Request %s",
	models.LanguageEs: "Solicitud de Mantenimiento %s",
}

var defaultStatusMessages = map[models.RequestStatus]map[models.Language]string{
	models.RequestStatusApproved: {
		models.LanguageEn: "Our maintenance team will visit your unit at the scheduled time.",
		models.LanguageEs: "Nuestro equipo de mantenimiento visitará su unidad a la hora programada.",
	},
}

var pdfLabels = map[models.Language]struct {
	Signature string
	Images    string
	Footer    string
}{
	models.LanguageEn: {"Tenant signature", "Property images", "Generated automatically by the maintenance request system"},
	models.LanguageEs: {"Firma del inquilino", "Imágenes de la propiedad", "Generado automáticamente por el sistema de solicitudes de mantenimiento"},
}

var statusNames = map[models.RequestStatus]map[models.Language]string{
	models.RequestStatusPending:  {models.LanguageEn: "Pending", models.LanguageEs: "Pendiente"},
	models.RequestStatusApproved: {models.LanguageEn: "Approved", models.LanguageEs: "Aprobada"},
	models.RequestStatusRejected: {models.LanguageEn: "Declined", models.LanguageEs: "Rechazada"},
}

// pdf разметка HTMLBasic не экранирует сущности, угловые скобки из текста арендатора заменяем
var pdfReplacer = strings.NewReplacer("<", "‹", ">", "›")

var funcs = template.FuncMap{
	"safe": func(s string) string { return pdfReplacer.Replace(s) },
}

func pick[T any](m map[models.Language]T, lang models.Language) T {
	if v, ok := m[lang]; ok {
		return v
	}
	return m[models.LanguageEn]
}

func Subject(kind Kind, lang models.Language, workOrderNumber string) string {
	return fmt.Sprintf(pick(subjects[kind], lang), workOrderNumber)
}

func PdfTitle(lang models.Language, workOrderNumber string) string {
	return fmt.Sprintf(pick(pdfTitles, lang), workOrderNumber)
}

func PdfLabels(lang models.Language) (signature, images, footer string) {
	l := pick(pdfLabels, lang)
	return l.Signature, l.Images, l.Footer
}

func StatusName(status models.RequestStatus, lang models.Language) string {
	names, ok := statusNames[status]
	if !ok {
		return string(status)
	}
	return pick(names, lang)
}

// DefaultStatusMessage стандартный текст письма, если администратор ничего не написал
func DefaultStatusMessage(status models.RequestStatus, lang models.Language) string {
	msgs, ok := defaultStatusMessages[status]
	if !ok {
		return ""
	}
	return pick(msgs, lang)
}

// Build текст письма или pdf по шаблону kind_lang, для отсутствующего языка берется en
func Build(kind Kind, lang models.Language, data models.TemplateData) (string, error) {
	tpl, err := getTemplate(kind, lang)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, data); err != nil {
		return "", errors.Wrapf(err, "ошибка заполнения шаблона %s", kind)
	}
	return buf.String(), nil
}

func getTemplate(kind Kind, lang models.Language) (*template.Template, error) {
	for _, l := range []models.Language{lang, models.LanguageEn} {
		name := fmt.Sprintf("%s_%s.tmpl", kind, l)
		body, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			continue
		}
		tpl, err := template.New(name).Funcs(funcs).Parse(string(body))
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка разбора шаблона %s", name)
		}
		return tpl, nil
	}
	return nil, errors.Errorf("шаблон %s не найден", kind)
}
