package documents

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	pdfexport "maintenance-backend/lib/export/pdf"
	filestorage "maintenance-backend/lib/file-storage"
	"maintenance-backend/lib/smtp"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"
)

type updaterStub struct {
	mu      sync.Mutex
	updates []map[string]interface{}
}

func (u *updaterStub) Update(id string, updMap map[string]interface{}) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.updates = append(u.updates, updMap)
	return nil
}

func (u *updaterStub) last(key string) (interface{}, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for idx := len(u.updates) - 1; idx >= 0; idx-- {
		if v, ok := u.updates[idx][key]; ok {
			return v, true
		}
	}
	return nil, false
}

type rendererStub struct {
	pages []pdfexport.Page
	err   error
}

func (r *rendererStub) Render(page pdfexport.Page) ([]byte, error) {
	r.pages = append(r.pages, page)
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.3 " + page.Title), nil
}

type mailerStub struct {
	sent   []smtp.Message
	failTo map[string]error
}

func (m *mailerStub) Send(ctx context.Context, msg smtp.Message) error {
	if err, ok := m.failTo[msg.To]; ok {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type env struct {
	store    *updaterStub
	renderer *rendererStub
	mailer   *mailerStub
	storage  filestorage.Provider
	handler  Provider
}

func newEnv(t *testing.T, adminEmail string) *env {
	storage, err := filestorage.NewLocal(t.TempDir())
	require.NoError(t, err)
	e := &env{
		store:    &updaterStub{},
		renderer: &rendererStub{},
		mailer:   &mailerStub{failTo: map[string]error{}},
		storage:  storage,
	}
	e.handler = NewHandlerWithDeps(Deps{
		Store:      e.store,
		Storage:    storage,
		Renderer:   e.renderer,
		Mailer:     e.mailer,
		AdminEmail: adminEmail,
		Location:   time.UTC,
	})
	return e
}

func spanishRecord() *dbmodels.MaintenanceRequest {
	rec := &dbmodels.MaintenanceRequest{
		BaseModel:         dbmodels.BaseModel{ID: "req-1", CreatedAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)},
		WorkOrderNumber:   "WO-20260310-ABCDE",
		TenantName:        "María López",
		TenantEmail:       "maria@example.com",
		TenantPhone:       "555-123-4567",
		BuildingName:      "Oak Tower",
		UnitNumber:        "12B",
		ScheduledDate:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		ScheduledTime:     "10:30",
		PermissionToEnter: true,
		SelectedLanguage:  models.LanguageEs,
		Status:            models.RequestStatusPending,
		Priority:          models.PriorityRoutine,
		PropertyImages:    pq.StringArray{"property_images/kitchen.png"},
		TranslationStatus: models.TranslationDone,
	}
	rec.SetWorkRequested(models.NewTranslated("El fregadero gotea", "The sink is leaking"))
	rec.SetSpecialInstructions(models.NewUntranslated(""))
	rec.SetNoPermissionReason(models.NewUntranslated(""))
	return rec
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("оба pdf и оба письма", func(t *testing.T) {
		e := newEnv(t, "ops@example.com")
		rec := spanishRecord()
		outcome := e.handler.Process(ctx, rec)
		require.False(t, outcome.HasFailures())

		require.Equal(t, "pdfs/maintenance_request_req-1_en_admin.pdf", rec.AdminPdfPath)
		require.Equal(t, "pdfs/maintenance_request_req-1_es.pdf", rec.PdfPath)
		exists, err := e.storage.Exists(ctx, rec.PdfPath)
		require.NoError(t, err)
		require.True(t, exists)

		require.Len(t, e.renderer.pages, 2)
		admin, tenant := e.renderer.pages[0], e.renderer.pages[1]
		require.Contains(t, admin.HTML, "The sink is leaking")
		require.Contains(t, admin.HTML, "El fregadero gotea")
		require.Equal(t, "Maintenance Request WO-20260310-ABCDE", admin.Title)
		require.Equal(t, "Solicitud de Mantenimiento WO-20260310-ABCDE", tenant.Title)
		require.Contains(t, tenant.HTML, "El fregadero gotea")
		require.NotContains(t, tenant.HTML, "The sink is leaking")

		require.Len(t, e.mailer.sent, 2)
		require.Equal(t, "maria@example.com", e.mailer.sent[0].To)
		require.Contains(t, e.mailer.sent[0].Subject, "Solicitud de mantenimiento recibida")
		require.Len(t, e.mailer.sent[0].Attachments, 1)
		require.Equal(t, "ops@example.com", e.mailer.sent[1].To)
		require.Contains(t, e.mailer.sent[1].Subject, "New maintenance request")

		require.NotNil(t, rec.EmailDeliveryStatus)
		require.Equal(t, models.EmailDeliverySent, *rec.EmailDeliveryStatus)
		status, ok := e.store.last("EmailDeliveryStatus")
		require.True(t, ok)
		require.Equal(t, models.EmailDeliverySent, status)
	})
	t.Run("ошибка письма администратору не меняет статус доставки", func(t *testing.T) {
		e := newEnv(t, "ops@example.com")
		e.mailer.failTo["ops@example.com"] = errors.New("mailbox unavailable")
		rec := spanishRecord()
		outcome := e.handler.Process(ctx, rec)
		require.True(t, outcome.HasFailures())
		require.True(t, outcome.AdminEmail.Failed())
		require.True(t, outcome.TenantEmail.Done)
		require.Equal(t, models.EmailDeliverySent, *rec.EmailDeliveryStatus)
	})
	t.Run("ошибка письма арендатору", func(t *testing.T) {
		e := newEnv(t, "")
		e.mailer.failTo["maria@example.com"] = errors.New("connection refused")
		rec := spanishRecord()
		outcome := e.handler.Process(ctx, rec)
		require.True(t, outcome.TenantEmail.Failed())
		require.True(t, outcome.AdminEmail.Skipped)
		require.Equal(t, models.EmailDeliveryFailed, *rec.EmailDeliveryStatus)
		require.Equal(t, "connection refused", rec.EmailDeliveryError)
		status, _ := e.store.last("EmailDeliveryError")
		require.Equal(t, "connection refused", status)
	})
	t.Run("pdf не сформирован, письмо уходит без вложения", func(t *testing.T) {
		e := newEnv(t, "")
		e.renderer.err = errors.New("font missing")
		rec := spanishRecord()
		outcome := e.handler.Process(ctx, rec)
		require.True(t, outcome.TenantPdf.Failed())
		require.True(t, outcome.AdminPdf.Failed())
		require.Empty(t, rec.PdfPath)
		require.True(t, outcome.TenantEmail.Done)
		require.Empty(t, e.mailer.sent[0].Attachments)
	})
}

func TestResendAndStatusEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("повторная отправка формирует отсутствующий pdf", func(t *testing.T) {
		e := newEnv(t, "")
		rec := spanishRecord()
		stage := e.handler.ResendPdf(ctx, rec, "landlord@example.com", "Copia solicitada")
		require.True(t, stage.Done, stage.ErrorText())
		require.Equal(t, "pdfs/maintenance_request_req-1_es.pdf", rec.PdfPath)
		require.Len(t, e.mailer.sent, 1)
		require.Equal(t, "landlord@example.com", e.mailer.sent[0].To)
		require.Contains(t, e.mailer.sent[0].TextBody, "Copia solicitada")
		require.Len(t, e.mailer.sent[0].Attachments, 1)
		// адрес произвольный, статус доставки арендатору не трогаем
		require.Nil(t, rec.EmailDeliveryStatus)
	})
	t.Run("письмо об одобрении на языке арендатора", func(t *testing.T) {
		e := newEnv(t, "")
		rec := spanishRecord()
		rec.Status = models.RequestStatusApproved
		stage := e.handler.SendStatusEmail(ctx, rec, "Vendremos el jueves")
		require.True(t, stage.Done)
		require.Contains(t, e.mailer.sent[0].Subject, "aprobada")
		require.Contains(t, e.mailer.sent[0].TextBody, "Vendremos el jueves")
		require.Equal(t, models.EmailDeliverySent, *rec.EmailDeliveryStatus)
	})
	t.Run("письмо об отклонении", func(t *testing.T) {
		e := newEnv(t, "")
		rec := spanishRecord()
		rec.SelectedLanguage = models.LanguageEn
		rec.Status = models.RequestStatusRejected
		e.mailer.failTo["maria@example.com"] = errors.New("timeout")
		stage := e.handler.SendStatusEmail(ctx, rec, "Duplicate request")
		require.True(t, stage.Failed())
		require.Equal(t, models.EmailDeliveryFailed, *rec.EmailDeliveryStatus)
	})
	t.Run("загрузка pdf администратора", func(t *testing.T) {
		e := newEnv(t, "")
		rec := spanishRecord()
		file, err := e.handler.LoadPdf(ctx, rec, true)
		require.NoError(t, err)
		require.Equal(t, "WO-20260310-ABCDE_admin.pdf", file.FileName)
		require.Equal(t, "pdfs/maintenance_request_req-1_en_admin.pdf", rec.AdminPdfPath)
		rendered := len(e.renderer.pages)

		_, err = e.handler.LoadPdf(ctx, rec, true)
		require.NoError(t, err)
		require.Equal(t, rendered, len(e.renderer.pages))
	})
	t.Run("pdf не сформирован", func(t *testing.T) {
		e := newEnv(t, "")
		e.renderer.err = errors.New("render boom")
		rec := spanishRecord()
		_, err := e.handler.LoadPdf(ctx, rec, false)
		require.ErrorIs(t, err, ErrPdfNotReady)
		require.Contains(t, err.Error(), "render boom")
		require.Empty(t, rec.PdfPath)
	})
}

func TestTemplateData(t *testing.T) {
	rec := spanishRecord()
	rec.PropertyAddress = "100 Main St"
	rec.PropertyCity = "Austin"
	rec.PropertyState = "TX"
	rec.PropertyZip = "78701"

	admin := TemplateData(*rec, models.LanguageEn, true, time.UTC)
	require.True(t, admin.ShowOriginal)
	require.Equal(t, "03/12/2026", admin.ScheduledDate)
	require.Equal(t, "100 Main St, Austin, TX 78701", admin.Address)

	tenant := TemplateData(*rec, models.LanguageEs, false, time.UTC)
	require.False(t, tenant.ShowOriginal)
	require.Equal(t, "12/03/2026", tenant.ScheduledDate)
	require.Equal(t, "Pendiente", tenant.Status)

	rec.SetWorkRequested(models.NewPendingTranslation("El fregadero gotea"))
	rec.TranslationStatus = models.TranslationFailed
	admin = TemplateData(*rec, models.LanguageEn, true, time.UTC)
	require.True(t, admin.Untranslated)
	require.False(t, admin.ShowOriginal)
	require.Equal(t, "El fregadero gotea", admin.WorkRequested)
}
