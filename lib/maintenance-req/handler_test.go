package maintenancereqhandler

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"maintenance-backend/db/testdb"
	buildingprovider "maintenance-backend/lib/dicts/building"
	buildingstore "maintenance-backend/lib/dicts/building/store"
	"maintenance-backend/lib/documents"
	pdfexport "maintenance-backend/lib/export/pdf"
	xlsexport "maintenance-backend/lib/export/xls"
	filestorage "maintenance-backend/lib/file-storage"
	filesdbstorage "maintenance-backend/lib/file-storage/storage"
	maintenancereqstore "maintenance-backend/lib/maintenance-req/store"
	notificationhandler "maintenance-backend/lib/notification"
	notificationstore "maintenance-backend/lib/notification/store"
	"maintenance-backend/lib/signature"
	"maintenance-backend/lib/smtp"
	submissionguard "maintenance-backend/lib/submission-guard"
	"maintenance-backend/lib/translation"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
	notificationapimodels "maintenance-backend/models/api/notification"
	dbmodels "maintenance-backend/models/db"
)

type translatorStub struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (s *translatorStub) Translate(ctx context.Context, text string, from, to models.Language) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail {
		return "", translation.ErrTranslationUnavailable
	}
	return fmt.Sprintf("[%s>%s] %s", from, to, text), nil
}

type mailerStub struct {
	mu   sync.Mutex
	sent []smtp.Message
}

func (m *mailerStub) Send(ctx context.Context, msg smtp.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mailerStub) to(address string) []smtp.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []smtp.Message{}
	for _, msg := range m.sent {
		if msg.To == address {
			result = append(result, msg)
		}
	}
	return result
}

type rendererStub struct{}

func (rendererStub) Render(page pdfexport.Page) ([]byte, error) {
	return []byte("%PDF-1.3 " + page.Title), nil
}

type adminsStub struct{}

func (adminsStub) ListAdminUsers() ([]string, error) {
	return []string{"admin-1", "admin-2"}, nil
}

type testEnv struct {
	db            *gorm.DB
	handler       Provider
	store         maintenancereqstore.Provider
	storage       filestorage.Provider
	translator    *translatorStub
	mailer        *mailerStub
	guard         submissionguard.Provider
	buildings     buildingprovider.Provider
	notifications notificationhandler.Provider
	now           time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	gdb := testdb.New(t)
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	storage, err := filestorage.NewLocal(t.TempDir())
	require.NoError(t, err)
	// вторник
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	e := &testEnv{
		db:         gdb,
		store:      maintenancereqstore.NewInstance(gdb),
		storage:    storage,
		translator: &translatorStub{},
		mailer:     &mailerStub{},
		guard:      submissionguard.NewHandlerWithDeps(submissionguard.NewMemoryStore(), 24*time.Hour, loc, clock),
		buildings:  buildingprovider.NewHandlerWithStore(buildingstore.NewInstance(gdb)),
		now:        now,
	}
	e.notifications = notificationhandler.NewHandlerWithDeps(notificationstore.NewInstance(gdb), adminsStub{})
	files := filesdbstorage.NewInstance(gdb)
	docs := documents.NewHandlerWithDeps(documents.Deps{
		Store:      e.store,
		Files:      files,
		Storage:    storage,
		Renderer:   rendererStub{},
		Mailer:     e.mailer,
		AdminEmail: "ops@example.com",
		Location:   loc,
		Now:        clock,
	})
	xlsexport.NewHandler()
	e.handler = NewHandlerWithDeps(Deps{
		Store:         e.store,
		Files:         files,
		Storage:       storage,
		Signature:     signature.NewHandlerWithDeps(storage, filestorage.DefaultStrategies, clock, 1<<20),
		Translator:    e.translator,
		Buildings:     e.buildings,
		Notifications: e.notifications,
		Documents:     docs,
		Guard:         e.guard,
		Xls:           xlsexport.Instance,
		Location:      loc,
		Now:           clock,
		MaxImages:     5,
		MaxImageBytes: 1 << 20,
	})
	return e
}

func testPNG(t *testing.T, size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8(x * y), A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func validSubmit(t *testing.T, lang string) maintenanceapimodels.SubmitRequest {
	permission := true
	work := "The kitchen sink is leaking"
	if lang == "es" {
		work = "El fregadero de la cocina gotea"
	}
	return maintenanceapimodels.SubmitRequest{
		BuildingName:      "Oak Tower",
		UnitNumber:        "12B",
		TenantName:        "Jane Roe",
		TenantEmail:       "jane@example.com",
		TenantPhone:       "(512) 555-0134",
		WorkRequested:     work,
		PermissionToEnter: &permission,
		ScheduledDate:     "2026-03-12",
		ScheduledTime:     "10:30",
		SelectedLanguage:  lang,
		TenantSignature:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 24)),
		PropertyImages: []models.File{
			{FileName: "sink.png", ContentType: "image/png", Body: testPNG(t, 32)},
		},
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("английская заявка", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		require.NoError(t, result.TranslationErr)
		rec := result.Request

		require.Regexp(t, `^WO-20260310-[A-Z0-9]{5}$`, rec.WorkOrderNumber)
		require.Equal(t, models.RequestStatusPending, rec.Status)
		require.Equal(t, models.LanguageEn, rec.SelectedLanguage)
		require.Equal(t, models.PriorityRoutine, rec.Priority)
		require.Equal(t, "pdfs/maintenance_request_"+rec.ID+"_en.pdf", rec.PdfPath)
		require.NotNil(t, rec.EmailDeliveryStatus)
		require.Equal(t, models.EmailDeliverySent, *rec.EmailDeliveryStatus)
		require.Zero(t, e.translator.calls)

		require.Equal(t, rec.WorkRequested, rec.WorkRequestedOriginal)
		require.Equal(t, rec.WorkRequested, rec.WorkRequestedTranslated)
		require.Equal(t, models.TranslationNotRequired, rec.TranslationStatus)

		require.True(t, rec.IsDigitalSignature)
		require.NotEmpty(t, rec.TenantSignature)
		exists, err := e.storage.Exists(ctx, rec.SignatureFilePath)
		require.NoError(t, err)
		require.True(t, exists)
		require.Len(t, rec.PropertyImages, 1)

		require.Equal(t, 2, result.Notified)
		require.False(t, result.Outcome.HasFailures())
		require.Len(t, e.mailer.to("jane@example.com"), 1)
		require.Len(t, e.mailer.to("ops@example.com"), 1)

		guard, err := e.guard.Check(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, guard)
		require.Equal(t, rec.WorkOrderNumber, guard.WorkOrderNumber)
	})
	t.Run("испанская заявка переводится", func(t *testing.T) {
		e := newTestEnv(t)
		data := validSubmit(t, "es")
		permission := false
		data.PermissionToEnter = &permission
		data.NoPermissionReason = "Tengo un perro"
		result, err := e.handler.Submit(ctx, "session-1", data)
		require.NoError(t, err)
		rec := result.Request

		require.Equal(t, "El fregadero de la cocina gotea", rec.WorkRequestedOriginal)
		require.Equal(t, "[es>en] El fregadero de la cocina gotea", rec.WorkRequestedTranslated)
		require.Equal(t, rec.WorkRequestedTranslated, rec.WorkRequested)
		require.Equal(t, "[es>en] Tengo un perro", rec.NoPermissionReason)
		require.Empty(t, rec.SpecialInstructions)
		require.Equal(t, models.TranslationDone, rec.TranslationStatus)
		require.Equal(t, 2, e.translator.calls)
		require.Equal(t, "pdfs/maintenance_request_"+rec.ID+"_es.pdf", rec.PdfPath)

		mails := e.mailer.to("jane@example.com")
		require.Len(t, mails, 1)
		require.Contains(t, mails[0].Subject, "Solicitud de mantenimiento recibida")
	})
	t.Run("перевод недоступен, заявка сохраняется", func(t *testing.T) {
		e := newTestEnv(t)
		e.translator.fail = true
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "es"))
		require.NoError(t, err)
		require.ErrorIs(t, result.TranslationErr, translation.ErrTranslationUnavailable)
		rec := result.Request
		require.Equal(t, models.TranslationFailed, rec.TranslationStatus)
		require.Equal(t, "El fregadero de la cocina gotea", rec.WorkRequested)
		require.Empty(t, rec.WorkRequestedTranslated)
		require.Contains(t, e.mailer.to("ops@example.com")[0].TextBody, "Translation: unavailable")
	})
	t.Run("без фото", func(t *testing.T) {
		e := newTestEnv(t)
		data := validSubmit(t, "en")
		data.PropertyImages = nil
		_, err := e.handler.Submit(ctx, "session-1", data)
		var errs apimodels.ValidationErrors
		require.True(t, errors.As(err, &errs))
		require.True(t, errs.Has("property_images"))
		require.Equal(t, apimodels.CategoryValidation, errs.Category())

		_, total, err := e.handler.List(maintenanceapimodels.RequestFilter{})
		require.NoError(t, err)
		require.Zero(t, total)
	})
	t.Run("фото не изображение", func(t *testing.T) {
		e := newTestEnv(t)
		data := validSubmit(t, "en")
		data.PropertyImages = []models.File{{FileName: "notes.txt", Body: []byte("plain text is not an image")}}
		_, err := e.handler.Submit(ctx, "session-1", data)
		var errs apimodels.ValidationErrors
		require.True(t, errors.As(err, &errs))
		require.True(t, errs.Has("property_images"))
	})
	t.Run("подпись слишком маленькая", func(t *testing.T) {
		e := newTestEnv(t)
		data := validSubmit(t, "en")
		data.TenantSignature = "data:image/png;base64,iVBORw0KGgo="
		_, err := e.handler.Submit(ctx, "session-1", data)
		var errs apimodels.ValidationErrors
		require.True(t, errors.As(err, &errs))
		require.Equal(t, apimodels.CategorySignature, errs.Category())

		_, total, err := e.handler.List(maintenanceapimodels.RequestFilter{})
		require.NoError(t, err)
		require.Zero(t, total)
	})
	t.Run("загруженная подпись", func(t *testing.T) {
		e := newTestEnv(t)
		data := validSubmit(t, "en")
		data.TenantSignature = ""
		data.SignatureUpload = &models.File{FileName: "sign.png", Body: testPNG(t, 24)}
		result, err := e.handler.Submit(ctx, "session-1", data)
		require.NoError(t, err)
		require.Empty(t, result.Request.TenantSignature)
		require.True(t, result.Request.IsDigitalSignature)
		require.Contains(t, result.Request.SignatureFilePath, string(models.FileUploadSignature)+"/")
	})
	t.Run("адрес копируется из справочника", func(t *testing.T) {
		e := newTestEnv(t)
		buildingID, err := e.buildings.Create(dictapimodels.BuildingData{
			Name: "Oak Tower", Address: "100 Main St", City: "Austin", State: "TX", Zip: "78701",
		})
		require.NoError(t, err)
		data := validSubmit(t, "en")
		data.BuildingID = buildingID
		result, err := e.handler.Submit(ctx, "session-1", data)
		require.NoError(t, err)
		require.Equal(t, "100 Main St", result.Request.PropertyAddress)

		require.NoError(t, e.buildings.Update(buildingID, dictapimodels.BuildingData{
			Name: "Oak Tower", Address: "200 Elm St", City: "Austin", State: "TX", Zip: "78701",
		}))
		view, err := e.handler.Get(result.Request.ID)
		require.NoError(t, err)
		require.Equal(t, "100 Main St", view.PropertyAddress)
		require.Equal(t, buildingID, view.BuildingID)

		data.BuildingID = "unknown"
		result, err = e.handler.Submit(ctx, "session-2", data)
		require.NoError(t, err)
		require.Empty(t, result.Request.PropertyAddress)
		require.Nil(t, result.Request.BuildingID)
	})
	t.Run("уведомления администраторам", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		list, _, err := e.notifications.List("admin-2", notificationapimodels.NotificationFilter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, result.Request.ID, list[0].MaintenanceRequestID)
	})
}

type collidingStore struct {
	maintenancereqstore.Provider
	collisions int
}

func (s *collidingStore) ExistsWorkOrder(workOrderNumber string) (bool, error) {
	if s.collisions > 0 {
		s.collisions--
		return true, nil
	}
	return s.Provider.ExistsWorkOrder(workOrderNumber)
}

// storedPaths файлы в локальном хранилище
func storedPaths(t *testing.T, storage filestorage.Provider) []string {
	paths := []string{}
	err := filepath.WalkDir(storage.LocalRoot(), func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		paths = append(paths, p)
		return nil
	})
	require.NoError(t, err)
	return paths
}

// imageFailStorage отказывает в записи фото начиная с n-го
type imageFailStorage struct {
	filestorage.Provider
	n     int
	count int
}

func (s *imageFailStorage) Put(ctx context.Context, filePath string, body []byte, contentType string) error {
	if strings.HasPrefix(filePath, string(models.FilePropertyImage)+"/") {
		s.count++
		if s.count >= s.n {
			return errors.New("квота хранилища исчерпана")
		}
	}
	return s.Provider.Put(ctx, filePath, body, contentType)
}

func TestSubmitCleanup(t *testing.T) {
	ctx := context.Background()

	t.Run("второе фото не записалось", func(t *testing.T) {
		e := newTestEnv(t)
		h := e.handler.(impl)
		h.deps.Storage = &imageFailStorage{Provider: e.storage, n: 2}
		data := validSubmit(t, "en")
		data.PropertyImages = append(data.PropertyImages, models.File{FileName: "floor.png", Body: testPNG(t, 16)})
		_, err := h.Submit(ctx, "session-1", data)
		require.Error(t, err)
		require.Empty(t, storedPaths(t, e.storage))
		var count int64
		require.NoError(t, e.db.Model(&dbmodels.StoredFile{}).Count(&count).Error)
		require.Zero(t, count)
	})
	t.Run("номер заявки не подобран", func(t *testing.T) {
		e := newTestEnv(t)
		h := e.handler.(impl)
		h.deps.Store = &collidingStore{Provider: e.store, collisions: workOrderMaxAttempts}
		_, err := h.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.ErrorIs(t, err, ErrWorkOrderExhausted)
		require.Empty(t, storedPaths(t, e.storage))
		var count int64
		require.NoError(t, e.db.Model(&dbmodels.StoredFile{}).Count(&count).Error)
		require.Zero(t, count)
	})
	t.Run("файлы принятой заявки остаются", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		exists, err := e.storage.Exists(ctx, result.Request.SignatureFilePath)
		require.NoError(t, err)
		require.True(t, exists)
	})
}

func TestWorkOrderRetry(t *testing.T) {
	e := newTestEnv(t)
	h := e.handler.(impl)

	t.Run("повтор при занятом номере", func(t *testing.T) {
		store := &collidingStore{Provider: e.store, collisions: 3}
		h.deps.Store = store
		result, err := h.Submit(context.Background(), "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		require.Zero(t, store.collisions)
		require.NotEmpty(t, result.Request.WorkOrderNumber)
	})
	t.Run("номера закончились", func(t *testing.T) {
		h.deps.Store = &collidingStore{Provider: e.store, collisions: workOrderMaxAttempts}
		_, err := h.Submit(context.Background(), "session-2", validSubmit(t, "en"))
		require.ErrorIs(t, err, ErrWorkOrderExhausted)
	})
}

func TestRetranslate(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.translator.fail = true
	result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "es"))
	require.NoError(t, err)
	id := result.Request.ID

	t.Run("ошибка перевода не портит запись", func(t *testing.T) {
		_, err := e.handler.Retranslate(ctx, id)
		require.ErrorIs(t, err, translation.ErrTranslationUnavailable)
		view, err := e.handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.TranslationFailed, view.TranslationStatus)
	})
	t.Run("повторный перевод идемпотентен", func(t *testing.T) {
		e.translator.fail = false
		first, err := e.handler.Retranslate(ctx, id)
		require.NoError(t, err)
		second, err := e.handler.Retranslate(ctx, id)
		require.NoError(t, err)
		require.Equal(t, first.WorkRequested.Translated, second.WorkRequested.Translated)
		require.Equal(t, "[es>en] El fregadero de la cocina gotea", second.WorkRequested.Text)
		require.Equal(t, "El fregadero de la cocina gotea", second.WorkRequested.Original)
		require.Equal(t, models.TranslationDone, second.TranslationStatus)
	})
	t.Run("английская заявка не переводится", func(t *testing.T) {
		result, err := e.handler.Submit(ctx, "session-2", validSubmit(t, "en"))
		require.NoError(t, err)
		calls := e.translator.calls
		_, err = e.handler.Retranslate(ctx, result.Request.ID)
		require.NoError(t, err)
		require.Equal(t, calls, e.translator.calls)
	})
	t.Run("неизвестная заявка", func(t *testing.T) {
		_, err := e.handler.Retranslate(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestApproveReject(t *testing.T) {
	ctx := context.Background()

	t.Run("отклонение без причины", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		_, err = e.handler.Reject(ctx, result.Request.ID, "admin-1", "   ")
		var errs apimodels.ValidationErrors
		require.True(t, errors.As(err, &errs))
		require.True(t, errs.Has("message"))
		view, err := e.handler.Get(result.Request.ID)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusPending, view.Status)
	})
	t.Run("одобрение испанской заявки", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "es"))
		require.NoError(t, err)
		version := result.Request.Version

		tr, err := e.handler.Approve(ctx, result.Request.ID, "admin-1", "We will come on Thursday")
		require.NoError(t, err)
		require.True(t, tr.Email.Done)
		require.Equal(t, models.RequestStatusApproved, tr.Request.Status)
		require.Equal(t, models.EmailDeliverySent, *tr.Request.EmailDeliveryStatus)
		require.Equal(t, version+1, tr.Request.Version)
		require.NotNil(t, tr.Request.ReviewedAt)

		mails := e.mailer.to("jane@example.com")
		last := mails[len(mails)-1]
		require.Contains(t, last.Subject, "aprobada")
		require.Contains(t, last.TextBody, "[en>es] We will come on Thursday")
	})
	t.Run("одобрение без сообщения", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "es"))
		require.NoError(t, err)
		calls := e.translator.calls
		tr, err := e.handler.Approve(ctx, result.Request.ID, "admin-1", "")
		require.NoError(t, err)
		require.Equal(t, calls, e.translator.calls)
		require.Contains(t, tr.Request.StatusMessage, "Nuestro equipo")
	})
	t.Run("ошибка перевода сообщения", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "es"))
		require.NoError(t, err)
		e.translator.fail = true
		tr, err := e.handler.Reject(ctx, result.Request.ID, "admin-1", "Duplicate request")
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusRejected, tr.Request.Status)
		require.Equal(t, "Duplicate request", tr.Request.RejectionReason)
		require.Equal(t, "Duplicate request", tr.Request.StatusMessage)
	})
	t.Run("повторное одобрение и смена конечного статуса", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		id := result.Request.ID
		_, err = e.handler.Approve(ctx, id, "admin-1", "")
		require.NoError(t, err)
		_, err = e.handler.Approve(ctx, id, "admin-1", "See you soon")
		require.NoError(t, err)
		// подтверждение + два письма о статусе
		require.Len(t, e.mailer.to("jane@example.com"), 3)

		_, err = e.handler.Reject(ctx, id, "admin-1", "Changed my mind")
		require.ErrorIs(t, err, ErrInvalidTransition)
		view, err := e.handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, view.Status)
	})
	t.Run("параллельные одобрение и отклонение", func(t *testing.T) {
		e := newTestEnv(t)
		result, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
		require.NoError(t, err)
		id := result.Request.ID

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = e.handler.Approve(ctx, id, "admin-1", "")
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = e.handler.Reject(ctx, id, "admin-2", "Not our building")
		}()
		wg.Wait()
		failed := 0
		for _, err := range errs {
			if err != nil {
				require.ErrorIs(t, err, ErrInvalidTransition)
				failed++
			}
		}
		require.Equal(t, 1, failed)
	})
	t.Run("неизвестная заявка", func(t *testing.T) {
		e := newTestEnv(t)
		_, err := e.handler.Approve(ctx, "missing", "admin-1", "")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConsoleOperations(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	en, err := e.handler.Submit(ctx, "session-1", validSubmit(t, "en"))
	require.NoError(t, err)
	es, err := e.handler.Submit(ctx, "session-2", validSubmit(t, "es"))
	require.NoError(t, err)

	t.Run("фильтр по языку и поиск", func(t *testing.T) {
		list, total, err := e.handler.List(maintenanceapimodels.RequestFilter{Language: models.LanguageEs})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, es.Request.ID, list[0].ID)

		list, total, err = e.handler.List(maintenanceapimodels.RequestFilter{Search: en.Request.WorkOrderNumber})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, en.Request.ID, list[0].ID)
	})
	t.Run("выгрузка", func(t *testing.T) {
		buf, err := e.handler.Export(maintenanceapimodels.RequestFilter{})
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
	})
	t.Run("повторная отправка pdf", func(t *testing.T) {
		err := e.handler.ResendPdf(ctx, es.Request.ID, maintenanceapimodels.ResendPdfRequest{Email: "bad"})
		require.Error(t, err)
		err = e.handler.ResendPdf(ctx, es.Request.ID, maintenanceapimodels.ResendPdfRequest{Email: "owner@example.com", Message: "Copia"})
		require.NoError(t, err)
		mails := e.mailer.to("owner@example.com")
		require.Len(t, mails, 1)
		require.Len(t, mails[0].Attachments, 1)
	})
	t.Run("pdf администратора", func(t *testing.T) {
		file, err := e.handler.LoadPdf(ctx, es.Request.ID, true)
		require.NoError(t, err)
		require.Contains(t, string(file.Body), "%PDF")
	})
	t.Run("удаление", func(t *testing.T) {
		require.NoError(t, e.handler.Delete(ctx, en.Request.ID))
		_, err := e.handler.Get(en.Request.ID)
		require.ErrorIs(t, err, ErrNotFound)
		exists, err := e.storage.Exists(ctx, en.Request.SignatureFilePath)
		require.NoError(t, err)
		require.False(t, exists)
		require.ErrorIs(t, e.handler.Delete(ctx, en.Request.ID), ErrNotFound)
	})
}
