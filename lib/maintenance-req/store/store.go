package maintenancereqstore

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
	dbmodels "maintenance-backend/models/db"
)

// ErrVersionConflict запись изменена параллельно, версия не совпала
var ErrVersionConflict = errors.New("заявка была изменена другим пользователем")

type Provider interface {
	Create(rec *dbmodels.MaintenanceRequest) error
	ExistsWorkOrder(workOrderNumber string) (bool, error)
	GetByID(id string) (*dbmodels.MaintenanceRequest, error)
	Update(id string, updMap map[string]interface{}) error
	UpdateWithVersion(id string, version int, updMap map[string]interface{}) error
	List(filter maintenanceapimodels.RequestFilter) (list []dbmodels.MaintenanceRequest, rowCount int64, err error)
	ListAll(filter maintenanceapimodels.RequestFilter) (list []dbmodels.MaintenanceRequest, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec *dbmodels.MaintenanceRequest) error {
	if rec.Version == 0 {
		rec.Version = 1
	}
	return i.db.
		Omit(clause.Associations).
		Create(rec).
		Error
}

func (i impl) ExistsWorkOrder(workOrderNumber string) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.MaintenanceRequest{}).
		Select("count(*) > 0").
		Where("work_order_number = ?", workOrderNumber).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) GetByID(id string) (*dbmodels.MaintenanceRequest, error) {
	rec := dbmodels.MaintenanceRequest{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.MaintenanceRequest{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) UpdateWithVersion(id string, version int, updMap map[string]interface{}) error {
	upd := make(map[string]interface{}, len(updMap)+1)
	for k, v := range updMap {
		upd[k] = v
	}
	upd["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.MaintenanceRequest{}).
		Where("id = ?", id).
		Where("version = ?", version).
		Updates(upd)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (i impl) List(filter maintenanceapimodels.RequestFilter) (list []dbmodels.MaintenanceRequest, rowCount int64, err error) {
	list = []dbmodels.MaintenanceRequest{}
	tx := i.filtered(filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества заявок")
		return nil, 0, errors.New("ошибка получения общего количества заявок")
	}
	page, limit := filter.GetPage()
	err = i.filtered(filter).
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListAll(filter maintenanceapimodels.RequestFilter) (list []dbmodels.MaintenanceRequest, err error) {
	list = []dbmodels.MaintenanceRequest{}
	err = i.filtered(filter).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.MaintenanceRequest{})
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) filtered(filter maintenanceapimodels.RequestFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.MaintenanceRequest{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Language != "" {
		tx = tx.Where("selected_language = ?", filter.Language)
	}
	if filter.Emergency != nil {
		tx = tx.Where("is_emergency = ?", *filter.Emergency)
	}
	if filter.DateFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx = tx.Where("created_at <= ?", *filter.DateTo)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		searchValue := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(work_order_number) like ? or LOWER(tenant_name) like ? or LOWER(tenant_email) like ? or LOWER(building_name) like ?",
			searchValue, searchValue, searchValue, searchValue)
	}
	return tx
}
