package apiv1

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"maintenance-backend/controllers"
	"maintenance-backend/lib/documents"
	maintenancereqhandler "maintenance-backend/lib/maintenance-req"
	"maintenance-backend/lib/translation"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
)

type maintenanceApiController struct {
	controllers.BaseAPIController
}

func InitMaintenanceApiRouters(app *fiber.App) {
	controller := maintenanceApiController{}
	app.Route("maintenance", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("retranslate", controller.retranslate)
			idRoute.Post("resend_pdf", controller.resendPdf)
			idRoute.Get("pdf", controller.pdf)
		})
	})
}

// sendRequestError ошибки по конкретной заявке
func (c *maintenanceApiController) sendRequestError(ctx *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, maintenancereqhandler.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, maintenancereqhandler.ErrInvalidTransition),
		errors.Is(err, maintenancereqhandler.ErrBusy):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, translation.ErrTranslationUnavailable):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, documents.ErrPdfNotReady):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx).WithField("request_id", ctx.Params("id")), err, msg)
}

// @Summary Список заявок
// @Tags Заявки на обслуживание
// @Description Список заявок с фильтром по статусу, языку, дате создания и строке поиска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 maintenanceapimodels.RequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]maintenanceapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/list [post]
func (c *maintenanceApiController) list(ctx *fiber.Ctx) error {
	var payload maintenanceapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := maintenancereqhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка заявок в Excel
// @Tags Заявки на обслуживание
// @Description Выгрузка заявок в Excel по фильтру списка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 maintenanceapimodels.RequestFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/export [post]
func (c *maintenanceApiController) export(ctx *fiber.Ctx) error {
	var payload maintenanceapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := maintenancereqhandler.Instance.Export(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки заявок в Excel")
	}
	fileName := fmt.Sprintf("maintenance-requests-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Получение заявки
// @Tags Заявки на обслуживание
// @Description Получение заявки по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id} [get]
func (c *maintenanceApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := maintenancereqhandler.Instance.Get(id)
	if err != nil {
		return c.sendRequestError(ctx, err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление заявки
// @Tags Заявки на обслуживание
// @Description Удаление заявки вместе с файлами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id} [delete]
func (c *maintenanceApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = maintenancereqhandler.Instance.Delete(ctx.UserContext(), id); err != nil {
		return c.sendRequestError(ctx, err, "Ошибка удаления заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Одобрение заявки
// @Tags Заявки на обслуживание
// @Description Статус сохраняется до отправки письма арендатору, ошибка отправки возвращается в email_error
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 maintenanceapimodels.TransitionRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.TransitionView}
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id}/approve [put]
func (c *maintenanceApiController) approve(ctx *fiber.Ctx) error {
	return c.transition(ctx, maintenancereqhandler.Instance.Approve, "Ошибка одобрения заявки")
}

// @Summary Отклонение заявки
// @Tags Заявки на обслуживание
// @Description Отклонение заявки, причина обязательна
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 maintenanceapimodels.TransitionRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.TransitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id}/reject [put]
func (c *maintenanceApiController) reject(ctx *fiber.Ctx) error {
	return c.transition(ctx, maintenancereqhandler.Instance.Reject, "Ошибка отклонения заявки")
}

type transitionFunc func(ctx context.Context, id, adminID, message string) (maintenancereqhandler.TransitionResult, error)

func (c *maintenanceApiController) transition(ctx *fiber.Ctx, action transitionFunc, msg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload maintenanceapimodels.TransitionRequest
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	result, err := action(ctx.UserContext(), id, middleware.GetUserID(ctx), payload.Message)
	if err != nil {
		return c.sendRequestError(ctx, err, msg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(maintenanceapimodels.TransitionView{
		Request:    maintenanceapimodels.RequestConvert(result.Request),
		EmailSent:  result.Email.Done,
		EmailError: result.Email.ErrorText(),
	}))
}

// @Summary Повторный перевод
// @Tags Заявки на обслуживание
// @Description Повторный перевод текстов арендатора на английский, оригиналы не меняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=maintenanceapimodels.RequestView}
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id}/retranslate [put]
func (c *maintenanceApiController) retranslate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := maintenancereqhandler.Instance.Retranslate(ctx.UserContext(), id)
	if err != nil {
		return c.sendRequestError(ctx, err, "Ошибка повторного перевода заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Повторная отправка pdf
// @Tags Заявки на обслуживание
// @Description Отправка pdf заявки на указанный адрес
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 maintenanceapimodels.ResendPdfRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id}/resend_pdf [post]
func (c *maintenanceApiController) resendPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload maintenanceapimodels.ResendPdfRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = maintenancereqhandler.Instance.ResendPdf(ctx.UserContext(), id, payload); err != nil {
		return c.sendRequestError(ctx, err, "Ошибка повторной отправки pdf")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Скачать pdf заявки
// @Tags Заявки на обслуживание
// @Description Pdf арендатора (на его языке) или администратора (на английском, с фото)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   variant				query	string	false	"tenant|admin"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/maintenance/{id}/pdf [get]
func (c *maintenanceApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	variant := ctx.Query("variant", "tenant")
	if variant != "tenant" && variant != "admin" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("variant должен быть tenant или admin"))
	}
	file, err := maintenancereqhandler.Instance.LoadPdf(ctx.UserContext(), id, variant == "admin")
	if err != nil {
		return c.sendRequestError(ctx, err, "Ошибка получения pdf заявки")
	}
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	return ctx.Send(file.Body)
}
