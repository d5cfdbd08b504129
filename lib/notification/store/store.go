package notificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "maintenance-backend/models/db"
)

type Provider interface {
	// CreateBatch все записи пишутся в одной транзакции
	CreateBatch(list []dbmodels.Notification) error
	List(userID string, unreadOnly bool, page, limit int) (list []dbmodels.Notification, rowCount int64, err error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, id string) (found bool, err error)
	MarkAllRead(userID string) (int64, error)
	Delete(userID, id string) (found bool, err error)
	DeleteMany(userID string, ids []string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateBatch(list []dbmodels.Notification) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		for idx := range list {
			if err := tx.Create(&list[idx]).Error; err != nil {
				return errors.Wrap(err, "ошибка создания уведомления")
			}
		}
		return nil
	})
}

func (i impl) List(userID string, unreadOnly bool, page, limit int) (list []dbmodels.Notification, rowCount int64, err error) {
	list = []dbmodels.Notification{}
	query := func() *gorm.DB {
		tx := i.db.Model(&dbmodels.Notification{}).
			Where("user_id = ?", userID)
		if unreadOnly {
			tx = tx.Where("is_read = ?", false)
		}
		return tx
	}
	if err = query().Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = query().
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

func (i impl) UnreadCount(userID string) (count int64, err error) {
	err = i.db.Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).
		Error
	return count, err
}

func (i impl) MarkRead(userID, id string) (bool, error) {
	tx := i.db.Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) MarkAllRead(userID string) (int64, error) {
	tx := i.db.Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true)
	return tx.RowsAffected, tx.Error
}

func (i impl) Delete(userID, id string) (bool, error) {
	tx := i.db.
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&dbmodels.Notification{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// DeleteMany чужие уведомления молча пропускаются
func (i impl) DeleteMany(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := i.db.
		Where("id in ?", ids).
		Where("user_id = ?", userID).
		Delete(&dbmodels.Notification{})
	return tx.RowsAffected, tx.Error
}
