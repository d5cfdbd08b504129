package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"maintenance-backend/controllers"
	notificationhandler "maintenance-backend/lib/notification"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	notificationapimodels "maintenance-backend/models/api/notification"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read_all", controller.readAll)
		router.Post("delete", controller.deleteMany)
		router.Put(":id/read", controller.read)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Уведомления администратора
// @Tags Уведомления
// @Description Уведомления текущего администратора, новые сверху
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   unread_only		query	bool	false	"только непрочитанные"
// @Param   page			query	int		false	"страница"
// @Param   limit			query	int		false	"записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/notifications [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var filter notificationapimodels.NotificationFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := notificationhandler.Instance.List(middleware.GetUserID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Количество непрочитанных уведомлений
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCount}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/notifications/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCount{Count: count}))
}

// @Summary Отметить уведомление прочитанным
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/notifications/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = notificationhandler.Instance.MarkRead(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.sendNotificationError(ctx, err, "Ошибка изменения уведомления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отметить все уведомления прочитанными
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/notifications/read_all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	if err := notificationhandler.Instance.MarkAllRead(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление уведомления
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/notifications/{id} [delete]
func (c *notificationApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = notificationhandler.Instance.Delete(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.sendNotificationError(ctx, err, "Ошибка удаления уведомления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление нескольких уведомлений
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.IDs	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/notifications/delete [post]
func (c *notificationApiController) deleteMany(ctx *fiber.Ctx) error {
	var payload notificationapimodels.IDs
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	deleted, err := notificationhandler.Instance.DeleteMany(middleware.GetUserID(ctx), payload.IDs)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(deleted))
}

func (c *notificationApiController) sendNotificationError(ctx *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, notificationhandler.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, msg)
}
