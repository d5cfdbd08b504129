package filesdbstorage

import (
	"gorm.io/gorm"
	dbmodels "maintenance-backend/models/db"
)

type Provider interface {
	SaveFile(rec dbmodels.StoredFile) (id string, err error)
	AttachToRequest(paths []string, requestID string) error
	GetFileList(requestID string) (list []dbmodels.StoredFile, err error)
	DeleteByRequest(requestID string) error
	DeleteUnattached(paths []string) error
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetFileList(requestID string) (list []dbmodels.StoredFile, err error) {
	err = i.db.
		Model(&dbmodels.StoredFile{}).
		Where("maintenance_request_id = ?", requestID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SaveFile(rec dbmodels.StoredFile) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// AttachToRequest файлы формы сохраняются до создания заявки, привязываем после
func (i impl) AttachToRequest(paths []string, requestID string) error {
	if len(paths) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.StoredFile{}).
		Where("path IN ?", paths).
		Update("maintenance_request_id", requestID).
		Error
}

func (i impl) DeleteByRequest(requestID string) error {
	return i.db.
		Where("maintenance_request_id = ?", requestID).
		Delete(&dbmodels.StoredFile{}).
		Error
}

// DeleteUnattached учет файлов формы, заявка по которой так и не сохранилась
func (i impl) DeleteUnattached(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return i.db.
		Where("path IN ? AND maintenance_request_id IS NULL", paths).
		Delete(&dbmodels.StoredFile{}).
		Error
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}
