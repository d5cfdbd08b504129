package db

import (
	"maintenance-backend/config"
	adminpaneluserstore "maintenance-backend/lib/admin-panel/store"
	authutils "maintenance-backend/lib/utils/auth-utils"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addSuperAdmin()
}

func addSuperAdmin() {
	if config.Conf.Admin.SeedEmail == "" {
		log.Warn("суперадмин не добавлен, отсутвует настройка ADMIN_SEED_EMAIL")
		return
	}
	adminStore := adminpaneluserstore.NewInstance(DB)
	existedRec, err := adminStore.FindByEmail(config.Conf.Admin.SeedEmail)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
		return
	}
	if existedRec != nil {
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.SeedPassword)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
		return
	}
	rec := dbmodels.AdminPanelUser{
		IsActive:  true,
		Role:      models.UserRoleSuperAdmin,
		Password:  hash,
		FirstName: "Administrator",
		Email:     config.Conf.Admin.SeedEmail,
	}
	_, err = adminStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
	}
}
