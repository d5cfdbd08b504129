package store

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "maintenance-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Building) (id string, err error)
	GetByID(id string) (rec *dbmodels.Building, err error)
	List(name string) (list []dbmodels.Building, err error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Building) (id string, err error) {
	err = i.isUnique("", rec.Name)
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Building, error) {
	rec := dbmodels.Building{}
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

func (i impl) List(name string) (list []dbmodels.Building, err error) {
	list = []dbmodels.Building{}
	tx := i.db.Model(&dbmodels.Building{})
	if name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	err = tx.Order("name").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	name, ok := updMap["Name"]
	if ok {
		err := i.isUnique(id, name.(string))
		if err != nil {
			return err
		}
	}
	return i.db.
		Model(&dbmodels.Building{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) isUnique(id, name string) error {
	var count int64
	tx := i.db.
		Model(&dbmodels.Building{}).
		Where("LOWER(name) = ?", strings.ToLower(name))
	if id != "" {
		tx = tx.Where("id <> ?", id)
	}
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("здание с таким названием уже существует")
	}
	return nil
}
