package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	apiv1 "maintenance-backend/controllers/v1"
	"maintenance-backend/controllers/v1/dict"
	"maintenance-backend/db"
	_ "maintenance-backend/docs"
	publicapi "maintenance-backend/controllers/v1/public"
	"maintenance-backend/fiberlog"
	"maintenance-backend/initializers"
	"maintenance-backend/lib/ws"
	"maintenance-backend/middleware"
)

// @title Maintenance requests API
// @version 1.0
// @description Прием и согласование заявок на обслуживание
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	bodyLimit := config.Conf.App.BodyLimitMb * 1024 * 1024
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())

	prometheus := fiberprometheus.New("maintenance-backend")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			log.WithError(err).Error("БД недоступна")
			return ctx.SendStatus(fiber.StatusServiceUnavailable)
		}
		return ctx.SendStatus(fiber.StatusOK)
	})

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, PUT",
		AllowOrigins:     config.Conf.App.PublicBaseURL,
		AllowCredentials: true,
	}))

	//форма арендатора
	public := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	apiV1.Mount("/public", public)
	public.Use(middleware.WithBodyLimit(int64(bodyLimit)))
	public.Use(middleware.TenantSession(config.Conf.GuardTTL()))
	publicapi.InitPublicMaintenanceApiRouters(public)
	dict.InitPublicBuildingRouters(public)

	//консоль администратора
	admin := fiber.New()
	apiV1.Mount("/admin", admin)
	apiv1.InitAdminAuthRouters(admin)
	admin.Use(middleware.AdminAuthorizationRequired())
	admin.Use(middleware.AdminRole())
	apiv1.InitMaintenanceApiRouters(admin)
	apiv1.InitNotificationApiRouters(admin)
	apiv1.InitAdminUserRouters(admin)
	dict.InitBuildingDictApiRouters(admin)

	//пуши консоли администратора
	wsApp := fiber.New()
	apiV1.Mount("/ws", wsApp)
	wsApp.Use(middleware.AdminWsAuthorizationRequired())
	wsApp.Use(middleware.AdminRole())
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
