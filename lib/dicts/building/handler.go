package buildingprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/db"
	"maintenance-backend/lib/dicts/building/store"
	initchecker "maintenance-backend/lib/utils/init-checker"
	dictapimodels "maintenance-backend/models/api/dict"
	dbmodels "maintenance-backend/models/db"
)

var ErrNotFound = errors.New("здание не найдено")

type Provider interface {
	Create(request dictapimodels.BuildingData) (id string, err error)
	Update(id string, request dictapimodels.BuildingData) error
	Get(id string) (item dictapimodels.BuildingView, err error)
	// Resolve здание для копирования адреса в заявку, nil если ссылки нет или она неверная
	Resolve(id string) (*dbmodels.Building, error)
	List(request dictapimodels.BuildingFind) (list []dictapimodels.BuildingView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(store.NewInstance(db.DB))
}

func NewHandlerWithStore(s store.Provider) Provider {
	instance := impl{
		store: s,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store store.Provider
}

func (i impl) Create(request dictapimodels.BuildingData) (id string, err error) {
	rec := dbmodels.Building{
		Name:    request.Name,
		Address: request.Address,
		City:    request.City,
		State:   request.State,
		Zip:     request.Zip,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("building_name", rec.Name).
		WithField("rec_id", id).
		Info("создано здание")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.BuildingData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	updMap := map[string]interface{}{
		"Name":    request.Name,
		"Address": request.Address,
		"City":    request.City,
		"State":   request.State,
		"Zip":     request.Zip,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлено здание")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.BuildingView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.BuildingView{}, err
	}
	if rec == nil {
		return dictapimodels.BuildingView{}, ErrNotFound
	}
	return rec.ToModel(), nil
}

func (i impl) Resolve(id string) (*dbmodels.Building, error) {
	if id == "" {
		return nil, nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		log.WithField("building_id", id).Warn("ссылка на несуществующее здание, адрес не заполняется")
	}
	return rec, nil
}

func (i impl) List(request dictapimodels.BuildingFind) (list []dictapimodels.BuildingView, err error) {
	recList, err := i.store.List(request.Name)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.BuildingView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rec.ToModel())
	}
	return result, nil
}
