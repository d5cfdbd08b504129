package dict

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"maintenance-backend/controllers"
	buildingprovider "maintenance-backend/lib/dicts/building"
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"
)

type buildingDictApiController struct {
	controllers.BaseAPIController
}

func InitBuildingDictApiRouters(app *fiber.App) {
	controller := buildingDictApiController{}
	app.Route("buildings", func(router fiber.Router) {
		router.Get("", controller.buildingList)
		router.Post("", controller.buildingCreate)
		router.Put(":id", controller.buildingUpdate)
		router.Get(":id", controller.buildingGet)
	})
}

// InitPublicBuildingRouters список зданий для формы арендатора
func InitPublicBuildingRouters(app *fiber.App) {
	controller := buildingDictApiController{}
	app.Get("buildings", controller.buildingList)
}

// @Summary Создание
// @Tags Справочник. Здания
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.BuildingData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/buildings [post]
func (c *buildingDictApiController) buildingCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.BuildingData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := buildingprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания записи в справочнике зданий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Здания
// @Description Обновление, адрес в созданных заявках не меняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.BuildingData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/buildings/{id} [put]
func (c *buildingDictApiController) buildingUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.BuildingData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = buildingprovider.Instance.Update(id, payload)
	if err != nil {
		if errors.Is(err, buildingprovider.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления данных в справочнике зданий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Здания
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.BuildingView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/buildings/{id} [get]
func (c *buildingDictApiController) buildingGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := buildingprovider.Instance.Get(id)
	if err != nil {
		if errors.Is(err, buildingprovider.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записи из справочника зданий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Поиск по названию
// @Tags Справочник. Здания
// @Description Поиск по названию
// @Param   name			query	string	false	"часть названия"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.BuildingView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/buildings [get]
// @router /api/v1/public/buildings [get]
func (c *buildingDictApiController) buildingList(ctx *fiber.Ctx) error {
	var payload dictapimodels.BuildingFind
	if err := ctx.QueryParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := buildingprovider.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка зданий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
