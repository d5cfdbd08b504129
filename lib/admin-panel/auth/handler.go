package adminpanelauthhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	"maintenance-backend/db"
	adminpaneluserstore "maintenance-backend/lib/admin-panel/store"
	authutils "maintenance-backend/lib/utils/auth-utils"
	authapimodels "maintenance-backend/models/api/auth"
)

var ErrBadCredentials = errors.New("неверная почта или пароль")

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
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

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		logger.Debug("пользователь с такой почтой не найден")
		return authapimodels.JWTResponse{}, ErrBadCredentials
	}
	if !authutils.CheckPassword(user.Password, password) {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, ErrBadCredentials
	}
	tokenString, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"LastLogin": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return authapimodels.JWTResponse{
		Token:     tokenString,
		ExpiresIn: config.Conf.Admin.JWTExpireInSec,
	}, nil
}
