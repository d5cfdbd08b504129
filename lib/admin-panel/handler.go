package adminpanelhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/db"
	adminpaneluserstore "maintenance-backend/lib/admin-panel/store"
	authutils "maintenance-backend/lib/utils/auth-utils"
	"maintenance-backend/models"
	adminpanelapimodels "maintenance-backend/models/api/admin-panel"
	dbmodels "maintenance-backend/models/db"
)

type Provider interface {
	CreateUser(request adminpanelapimodels.User) (string, error)
	List() ([]adminpanelapimodels.UserView, error)
	ListAdminUsers() ([]string, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(adminpaneluserstore.NewInstance(db.DB))
}

func NewHandlerWithStore(store adminpaneluserstore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store adminpaneluserstore.Provider
}

func (i impl) CreateUser(request adminpanelapimodels.User) (string, error) {
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		return "", err
	}
	role := request.Role
	if role == "" {
		role = models.UserRoleAdmin
	}
	rec := dbmodels.AdminPanelUser{
		IsActive:    true,
		Role:        role,
		Password:    hash,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
	}
	userID, err := i.store.Create(rec)
	if err != nil {
		log.
			WithField("email", request.Email).
			WithError(err).
			Error("Ошибка создания пользователя админки")
		return "", err
	}
	log.
		WithField("user_id", userID).
		WithField("email", rec.Email).
		Info("Создан пользователь админки")
	return userID, nil
}

func (i impl) List() ([]adminpanelapimodels.UserView, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка пользователей админки")
		return nil, err
	}
	result := make([]adminpanelapimodels.UserView, 0, len(list))
	for _, rec := range list {
		result = append(result, adminpanelapimodels.UserConvert(rec))
	}
	return result, nil
}

// ListAdminUsers ид активных администраторов для рассылки уведомлений
func (i impl) ListAdminUsers() ([]string, error) {
	ids, err := i.store.ListActiveAdminIDs()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка администраторов")
	}
	return ids, nil
}
