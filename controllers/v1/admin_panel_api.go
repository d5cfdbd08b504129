package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"maintenance-backend/controllers"
	adminpanelhandler "maintenance-backend/lib/admin-panel"
	adminpanelauthhandler "maintenance-backend/lib/admin-panel/auth"
	adminpaneluserstore "maintenance-backend/lib/admin-panel/store"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	adminpanelapimodels "maintenance-backend/models/api/admin-panel"
	authapimodels "maintenance-backend/models/api/auth"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminAuthRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Post("auth/login", controller.login)
}

func InitAdminUserRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("users", func(router fiber.Router) {
		router.Use(middleware.SuperAdminRole())
		router.Post("", controller.userCreate)
		router.Get("", controller.userList)
	})
}

// @Summary Аутентификация администратора
// @Tags Админ панель
// @Description Аутентификация администратора
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/auth/login [post]
func (a *adminApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := a.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := adminpanelauthhandler.Instance.Login(payload.Email, payload.Password)
	if errors.Is(err, adminpanelauthhandler.ErrBadCredentials) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
	}
	if err != nil {
		return a.SendError(ctx, a.GetLogger(ctx), err, "Ошибка аутентификации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание администратора
// @Tags Админ панель. Пользователи
// @Description Создание администратора, доступно суперадмину
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 adminpanelapimodels.User	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users [post]
func (a *adminApiController) userCreate(ctx *fiber.Ctx) error {
	var payload adminpanelapimodels.User
	if err := a.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID, err := adminpanelhandler.Instance.CreateUser(payload)
	if errors.Is(err, adminpaneluserstore.ErrEmailTaken) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	if err != nil {
		return a.SendError(ctx, a.GetLogger(ctx), err, "Ошибка создания пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(userID))
}

// @Summary Получение списка администраторов
// @Tags Админ панель. Пользователи
// @Description Получение списка администраторов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]adminpanelapimodels.UserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/users [get]
func (a *adminApiController) userList(ctx *fiber.Ctx) error {
	users, err := adminpanelhandler.Instance.List()
	if err != nil {
		return a.SendError(ctx, a.GetLogger(ctx), err, "Ошибка получения списка пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(users))
}
