package publicapi

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/controllers"
	maintenancereqhandler "maintenance-backend/lib/maintenance-req"
	submissionguard "maintenance-backend/lib/submission-guard"
	"maintenance-backend/middleware"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
	dbmodels "maintenance-backend/models/db"
)

const (
	FormPath   = "/maintenance/new"
	ThanksPath = "/maintenance/thanks"
)

type publicMaintenanceApiController struct {
	controllers.BaseAPIController
}

func InitPublicMaintenanceApiRouters(app *fiber.App) {
	controller := publicMaintenanceApiController{}
	app.Route("maintenance", func(router fiber.Router) {
		router.Post("", controller.submit)
		router.Get("form", controller.form)
		router.Get("thanks", controller.thanks)
		router.Post("clear_session", controller.clearSession)
	})
}

func (c *publicMaintenanceApiController) getLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithField("session_id", middleware.GetSessionID(ctx))
}

func guardConvert(guard *dbmodels.SubmissionGuard, redirect string) maintenanceapimodels.GuardView {
	view := maintenanceapimodels.GuardView{Redirect: redirect}
	if guard == nil {
		return view
	}
	view.Submitted = guard.Submitted
	view.WorkOrderNumber = guard.WorkOrderNumber
	view.TenantName = guard.TenantName
	view.TenantEmail = guard.TenantEmail
	view.SubmissionTime = &guard.SubmissionTime
	view.ExpiresAt = &guard.ExpiresAt
	return view
}

// checkGuard отметка сессии не должна мешать арендатору: при сбое хранилища считаем, что ее нет
func (c *publicMaintenanceApiController) checkGuard(ctx *fiber.Ctx) *dbmodels.SubmissionGuard {
	guard, err := submissionguard.Instance.Check(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil {
		c.getLogger(ctx).WithError(err).Warn("ошибка проверки отметки сессии")
		return nil
	}
	return guard
}

// @Summary Проверка перед показом формы
// @Tags Заявка арендатора
// @Description Если в сессии уже есть отправленная заявка, клиент переходит на страницу благодарности
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.GuardView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/maintenance/form [get]
func (c *publicMaintenanceApiController) form(ctx *fiber.Ctx) error {
	guard := c.checkGuard(ctx)
	if guard != nil {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(guardConvert(guard, ThanksPath)))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(guardConvert(nil, "")))
}

// @Summary Данные страницы благодарности
// @Tags Заявка арендатора
// @Description Без отправленной заявки в сессии клиент возвращается к форме
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.GuardView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/maintenance/thanks [get]
func (c *publicMaintenanceApiController) thanks(ctx *fiber.Ctx) error {
	guard := c.checkGuard(ctx)
	if guard == nil {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(guardConvert(nil, FormPath)))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(guardConvert(guard, "")))
}

// @Summary Новая заявка
// @Tags Заявка арендатора
// @Description Сброс отметки об отправке, после чего можно заполнить форму заново
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.GuardView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/maintenance/clear_session [post]
func (c *publicMaintenanceApiController) clearSession(ctx *fiber.Ctx) error {
	err := submissionguard.Instance.Clear(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil && !errors.Is(err, submissionguard.ErrNoSession) {
		return c.SendError(ctx, c.getLogger(ctx), err, "An internal error occurred, please try again")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(guardConvert(nil, FormPath)))
}

// @Summary Отправка заявки
// @Tags Заявка арендатора
// @Description Форма multipart: поля заявки, property_images[] (не менее одного фото), подпись tenant_signature (data url) или файл signature_file
// @Accept  multipart/form-data
// @Param   building_name			formData	string	true	"здание"
// @Param   building_id				formData	string	false	"ид здания из справочника"
// @Param   unit_number				formData	string	true	"квартира"
// @Param   tenant_name				formData	string	true	"арендатор"
// @Param   tenant_email			formData	string	true	"почта"
// @Param   tenant_phone			formData	string	true	"телефон"
// @Param   work_requested			formData	string	true	"описание работ"
// @Param   special_instructions	formData	string	false	"особые указания"
// @Param   permission_to_enter		formData	bool	true	"разрешение на вход"
// @Param   no_permission_reason	formData	string	false	"причина запрета входа"
// @Param   scheduled_date			formData	string	true	"дата визита 2006-01-02"
// @Param   scheduled_time			formData	string	true	"время визита 15:04"
// @Param   is_emergency			formData	bool	false	"аварийная"
// @Param   selected_language		formData	string	true	"en|es"
// @Param   tenant_signature		formData	string	false	"подпись, data url"
// @Param   signature_file			formData	file	false	"подпись, файл"
// @Param   property_images[]		formData	file	true	"фото"
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.SubmitView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response{data=maintenanceapimodels.GuardView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/maintenance [post]
func (c *publicMaintenanceApiController) submit(ctx *fiber.Ctx) error {
	logger := c.getLogger(ctx)
	sessionID := middleware.GetSessionID(ctx)
	if guard := c.checkGuard(ctx); guard != nil {
		resp := apimodels.NewResponse(guardConvert(guard, ThanksPath))
		resp.Status = "fail"
		resp.Message = "A request has already been submitted in this session"
		return ctx.Status(fiber.StatusConflict).JSON(resp)
	}

	var payload maintenanceapimodels.SubmitRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if form, formErr := ctx.MultipartForm(); formErr == nil {
		var err error
		if payload.PropertyImages, err = readFiles(form, "property_images[]", "property_images"); err != nil {
			logger.WithError(err).Error("ошибка чтения фото из формы")
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("Unable to read the uploaded images"))
		}
		signatureFiles, err := readFiles(form, "signature_file")
		if err != nil {
			logger.WithError(err).Error("ошибка чтения файла подписи из формы")
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("Unable to read the signature file"))
		}
		if len(signatureFiles) != 0 {
			payload.SignatureUpload = &signatureFiles[0]
		}
	}

	result, err := maintenancereqhandler.Instance.Submit(ctx.UserContext(), sessionID, payload)
	if err != nil {
		return c.SendError(ctx, logger, err, "An internal error occurred while saving your request, please try again")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(maintenanceapimodels.SubmitView{
		ID:              result.Request.ID,
		WorkOrderNumber: result.Request.WorkOrderNumber,
		Redirect:        ThanksPath,
	}))
}

func readFiles(form *multipart.Form, keys ...string) ([]models.File, error) {
	result := []models.File{}
	for _, key := range keys {
		for _, header := range form.File[key] {
			file, err := readFile(header)
			if err != nil {
				return nil, err
			}
			result = append(result, file)
		}
	}
	return result, nil
}

func readFile(header *multipart.FileHeader) (models.File, error) {
	buffer, err := header.Open()
	if err != nil {
		return models.File{}, err
	}
	defer buffer.Close()
	body, err := io.ReadAll(buffer)
	if err != nil {
		return models.File{}, err
	}
	return models.File{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
